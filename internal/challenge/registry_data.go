package challenge

import "github.com/abhisek/sqlchallenge/internal/schema"

// builtinEntries is the authored question bank. One entry per
// (topic, category) pair; the SQL is the canonical answer for that pair.
var builtinEntries = []Entry{
	// Product
	{
		Topic:    schema.TopicProduct,
		Category: CategoryCumulativeSum,
		Template: Template{
			Question:     "What is the total cumulative price of all products by the most recent launch date?",
			ReferenceSQL: "SELECT MAX(SUM(price) OVER (ORDER BY launch_date)) FROM product",
		},
	},
	{
		Topic:    schema.TopicProduct,
		Category: CategoryRowNumber,
		Template: Template{
			Question:     "What is the ranking position of the most expensive product in the entire product table?",
			ReferenceSQL: "SELECT MAX(ROW_NUMBER() OVER (ORDER BY price DESC)) FROM product",
		},
	},
	{
		Topic:    schema.TopicProduct,
		Category: CategoryAverage,
		Template: Template{
			Question:     "What is the overall average price of products considering the latest launch date?",
			ReferenceSQL: "SELECT MAX(AVG(price) OVER (ORDER BY launch_date)) FROM product",
		},
	},
	{
		Topic:    schema.TopicProduct,
		Category: CategoryCount,
		Template: Template{
			Question:     "As of the latest launch date, how many products have been launched in total?",
			ReferenceSQL: "SELECT MAX(COUNT(*) OVER (ORDER BY launch_date)) FROM product",
		},
	},
	{
		Topic:    schema.TopicProduct,
		Category: CategoryRank,
		Template: Template{
			Question:     "In the category with the most products, what is the highest rank based on price?",
			ReferenceSQL: "SELECT MAX(RANK() OVER (PARTITION BY category ORDER BY price DESC)) FROM product",
		},
	},
	{
		Topic:    schema.TopicProduct,
		Category: CategoryLead,
		Template: Template{
			Question:     "What is the price difference between the most expensive product and the subsequent product launched?",
			ReferenceSQL: "SELECT MAX(price - LEAD(price) OVER (ORDER BY price DESC, launch_date)) FROM product WHERE price IS NOT NULL",
		},
	},
	{
		Topic:    schema.TopicProduct,
		Category: CategoryLag,
		Template: Template{
			Question:     "Find the price difference between each product and the product launched immediately before it, ordered by launch date.",
			ReferenceSQL: "SELECT MAX(price - LAG(price) OVER (ORDER BY launch_date)) FROM product WHERE price IS NOT NULL",
		},
	},
	{
		Topic:    schema.TopicProduct,
		Category: CategoryFirstValue,
		Template: Template{
			Question:     "What is the highest initial launch price recorded in any product category?",
			ReferenceSQL: "SELECT MAX(FIRST_VALUE(price) OVER (PARTITION BY category ORDER BY launch_date)) FROM product",
		},
	},
	{
		Topic:    schema.TopicProduct,
		Category: CategoryLastValue,
		Template: Template{
			Question:     "Among the final products launched in each category, what is the lowest launch price?",
			ReferenceSQL: "SELECT MIN(LAST_VALUE(price) OVER (PARTITION BY category ORDER BY launch_date ROWS BETWEEN CURRENT ROW AND UNBOUNDED FOLLOWING)) FROM product",
		},
	},
	{
		Topic:    schema.TopicProduct,
		Category: CategoryNthValue,
		Template: Template{
			Question:     "What is the highest launch price of the third product in any category?",
			ReferenceSQL: "SELECT MAX(NTH_VALUE(price, 3) OVER (PARTITION BY category ORDER BY launch_date)) FROM product",
		},
	},
	{
		Topic:    schema.TopicProduct,
		Category: CategoryPercentRank,
		Template: Template{
			Question:     "Within each category, what is the maximum percentile rank based on the price of products?",
			ReferenceSQL: "SELECT MAX(PERCENT_RANK() OVER (PARTITION BY category ORDER BY price DESC)) FROM product",
		},
	},
	{
		Topic:    schema.TopicProduct,
		Category: CategoryCumulativeDistribution,
		Template: Template{
			Question:     "For the most expensive product in its category, what is its cumulative distribution?",
			ReferenceSQL: "SELECT MAX(CUME_DIST() OVER (PARTITION BY category ORDER BY price DESC)) FROM product",
		},
	},
	{
		Topic:    schema.TopicProduct,
		Category: CategoryPercentileContinuous,
		Template: Template{
			Question:     "Across all categories, what is the highest median price?",
			ReferenceSQL: "SELECT MAX(PERCENTILE_CONT(0.5) WITHIN GROUP (ORDER BY price) OVER (PARTITION BY category)) FROM product",
		},
	},
	{
		Topic:    schema.TopicProduct,
		Category: CategoryPercentileDiscrete,
		Template: Template{
			Question:     "What is the maximum discrete median price across all product categories?",
			ReferenceSQL: "SELECT MAX(PERCENTILE_DISC(0.5) WITHIN GROUP (ORDER BY price) OVER (PARTITION BY category)) FROM product",
		},
	},
	// User
	{
		Topic:    schema.TopicUser,
		Category: CategoryCumulativeSum,
		Template: Template{
			Question:     "What is the total cumulative order count for all users as of the most recent join date?",
			ReferenceSQL: "SELECT MAX(SUM(order_count) OVER (ORDER BY join_date)) FROM user",
		},
	},
	{
		Topic:    schema.TopicUser,
		Category: CategoryRowNumber,
		Template: Template{
			Question:     "What is the position of the user with the highest order count?",
			ReferenceSQL: "SELECT MAX(ROW_NUMBER() OVER (ORDER BY order_count DESC)) FROM user",
		},
	},
	{
		Topic:    schema.TopicUser,
		Category: CategoryAverage,
		Template: Template{
			Question:     "What is the average order count for users as of the most recent join date?",
			ReferenceSQL: "SELECT MAX(AVG(order_count) OVER (ORDER BY join_date)) FROM user",
		},
	},
	{
		Topic:    schema.TopicUser,
		Category: CategoryCount,
		Template: Template{
			Question:     "How many users have joined up to the most recent join date?",
			ReferenceSQL: "SELECT MAX(COUNT(*) OVER (ORDER BY join_date)) FROM user",
		},
	},
	{
		Topic:    schema.TopicUser,
		Category: CategoryRank,
		Template: Template{
			Question:     "Among all languages, what is the highest rank based on order count?",
			ReferenceSQL: "SELECT MAX(RANK() OVER (PARTITION BY language ORDER BY order_count DESC)) FROM user",
		},
	},
	{
		Topic:    schema.TopicUser,
		Category: CategoryLead,
		Template: Template{
			Question:     "What is the order count difference between the user with the most orders and the next user?",
			ReferenceSQL: "SELECT MAX(order_count - LEAD(order_count) OVER (ORDER BY order_count DESC)) FROM user WHERE order_count IS NOT NULL",
		},
	},
	{
		Topic:    schema.TopicUser,
		Category: CategoryLag,
		Template: Template{
			Question:     "What is the order count difference between a user and the user who joined just before them, sorted by join date?",
			ReferenceSQL: "SELECT MAX(order_count - LAG(order_count) OVER (ORDER BY join_date)) FROM user WHERE order_count IS NOT NULL",
		},
	},
	{
		Topic:    schema.TopicUser,
		Category: CategoryFirstValue,
		Template: Template{
			Question:     "What is the highest initial order count recorded for any language group?",
			ReferenceSQL: "SELECT MAX(FIRST_VALUE(order_count) OVER (PARTITION BY language ORDER BY join_date)) FROM user",
		},
	},
	{
		Topic:    schema.TopicUser,
		Category: CategoryLastValue,
		Template: Template{
			Question:     "What is the lowest order count among the latest users who joined in each language group?",
			ReferenceSQL: "SELECT MIN(LAST_VALUE(order_count) OVER (PARTITION BY language ORDER BY join_date ROWS BETWEEN CURRENT ROW AND UNBOUNDED FOLLOWING)) FROM user",
		},
	},
	{
		Topic:    schema.TopicUser,
		Category: CategoryNthValue,
		Template: Template{
			Question:     "What is the highest order count of the third user who joined in any language group?",
			ReferenceSQL: "SELECT MAX(NTH_VALUE(order_count, 3) OVER (PARTITION BY language ORDER BY join_date)) FROM user",
		},
	},
	{
		Topic:    schema.TopicUser,
		Category: CategoryPercentRank,
		Template: Template{
			Question:     "What is the maximum percentile rank of users based on order count within each language group?",
			ReferenceSQL: "SELECT MAX(PERCENT_RANK() OVER (PARTITION BY language ORDER BY order_count DESC)) FROM user",
		},
	},
	{
		Topic:    schema.TopicUser,
		Category: CategoryCumulativeDistribution,
		Template: Template{
			Question:     "For the user with the highest order count in their language group, what is their cumulative distribution?",
			ReferenceSQL: "SELECT MAX(CUME_DIST() OVER (PARTITION BY language ORDER BY order_count DESC)) FROM user",
		},
	},
	{
		Topic:    schema.TopicUser,
		Category: CategoryPercentileContinuous,
		Template: Template{
			Question:     "Across all language groups, what is the highest median order count?",
			ReferenceSQL: "SELECT MAX(PERCENTILE_CONT(0.5) WITHIN GROUP (ORDER BY order_count) OVER (PARTITION BY language)) FROM user",
		},
	},
	{
		Topic:    schema.TopicUser,
		Category: CategoryPercentileDiscrete,
		Template: Template{
			Question:     "What is the maximum discrete median order count across all language groups?",
			ReferenceSQL: "SELECT MAX(PERCENTILE_DISC(0.5) WITHIN GROUP (ORDER BY order_count) OVER (PARTITION BY language)) FROM user",
		},
	},
	// Customer
	{
		Topic:    schema.TopicCustomer,
		Category: CategoryCumulativeSum,
		Template: Template{
			Question:     "What is the total cumulative amount spent by all customers as of the most recent order?",
			ReferenceSQL: "SELECT MAX(SUM(order_total) OVER (ORDER BY last_order)) FROM customer",
		},
	},
	{
		Topic:    schema.TopicCustomer,
		Category: CategoryRowNumber,
		Template: Template{
			Question:     "What is the position of the customer who spent the most in total?",
			ReferenceSQL: "SELECT MAX(ROW_NUMBER() OVER (ORDER BY order_total DESC)) FROM customer",
		},
	},
	{
		Topic:    schema.TopicCustomer,
		Category: CategoryAverage,
		Template: Template{
			Question:     "What is the average amount spent by customers as of the most recent order date?",
			ReferenceSQL: "SELECT MAX(AVG(order_total) OVER (ORDER BY last_order)) FROM customer",
		},
	},
	{
		Topic:    schema.TopicCustomer,
		Category: CategoryCount,
		Template: Template{
			Question:     "How many customers have placed orders up to the most recent order date?",
			ReferenceSQL: "SELECT MAX(COUNT(*) OVER (ORDER BY last_order)) FROM customer",
		},
	},
	{
		Topic:    schema.TopicCustomer,
		Category: CategoryRank,
		Template: Template{
			Question:     "What is the highest rank in order total among all loyalty levels?",
			ReferenceSQL: "SELECT MAX(RANK() OVER (PARTITION BY loyalty ORDER BY order_total DESC)) FROM customer",
		},
	},
	{
		Topic:    schema.TopicCustomer,
		Category: CategoryLead,
		Template: Template{
			Question:     "What is the difference in total amount spent between the top spender and the next customer?",
			ReferenceSQL: "SELECT MAX(order_total - LEAD(order_total) OVER (ORDER BY order_total DESC)) FROM customer WHERE order_total IS NOT NULL",
		},
	},
	{
		Topic:    schema.TopicCustomer,
		Category: CategoryLag,
		Template: Template{
			Question:     "Determine the maximum difference in order total between each customer and the one whose last order was immediately before them.",
			ReferenceSQL: "SELECT MAX(order_total - LAG(order_total) OVER (ORDER BY last_order)) FROM customer WHERE order_total IS NOT NULL",
		},
	},
	{
		Topic:    schema.TopicCustomer,
		Category: CategoryFirstValue,
		Template: Template{
			Question:     "What is the highest initial amount spent by any customer within each loyalty level?",
			ReferenceSQL: "SELECT MAX(FIRST_VALUE(order_total) OVER (PARTITION BY loyalty ORDER BY last_order)) FROM customer",
		},
	},
	{
		Topic:    schema.TopicCustomer,
		Category: CategoryLastValue,
		Template: Template{
			Question:     "What is the lowest amount spent among the latest customers in each loyalty level?",
			ReferenceSQL: "SELECT MIN(LAST_VALUE(order_total) OVER (PARTITION BY loyalty ORDER BY last_order ROWS BETWEEN CURRENT ROW AND UNBOUNDED FOLLOWING)) FROM customer",
		},
	},
	{
		Topic:    schema.TopicCustomer,
		Category: CategoryNthValue,
		Template: Template{
			Question:     "What is the highest amount spent by the third most recent customer in any loyalty level?",
			ReferenceSQL: "SELECT MAX(NTH_VALUE(order_total, 3) OVER (PARTITION BY loyalty ORDER BY last_order)) FROM customer",
		},
	},
	{
		Topic:    schema.TopicCustomer,
		Category: CategoryPercentRank,
		Template: Template{
			Question:     "What is the maximum percentile rank of customers based on total amount spent within each loyalty level?",
			ReferenceSQL: "SELECT MAX(PERCENT_RANK() OVER (PARTITION BY loyalty ORDER BY order_total DESC)) FROM customer",
		},
	},
	{
		Topic:    schema.TopicCustomer,
		Category: CategoryCumulativeDistribution,
		Template: Template{
			Question:     "For the customer who spent the most within their loyalty level, what is their cumulative distribution?",
			ReferenceSQL: "SELECT MAX(CUME_DIST() OVER (PARTITION BY loyalty ORDER BY order_total DESC)) FROM customer",
		},
	},
	{
		Topic:    schema.TopicCustomer,
		Category: CategoryPercentileContinuous,
		Template: Template{
			Question:     "Across all loyalty levels, what is the highest median amount spent by customers?",
			ReferenceSQL: "SELECT MAX(PERCENTILE_CONT(0.5) WITHIN GROUP (ORDER BY order_total) OVER (PARTITION BY loyalty)) FROM customer",
		},
	},
	{
		Topic:    schema.TopicCustomer,
		Category: CategoryPercentileDiscrete,
		Template: Template{
			Question:     "What is the maximum discrete median amount spent across all loyalty levels?",
			ReferenceSQL: "SELECT MAX(PERCENTILE_DISC(0.5) WITHIN GROUP (ORDER BY order_total) OVER (PARTITION BY loyalty)) FROM customer",
		},
	},
	// Employee
	{
		Topic:    schema.TopicEmployee,
		Category: CategoryCumulativeSum,
		Template: Template{
			Question:     "What is the total cumulative salary paid to employees as of the most recent hire date?",
			ReferenceSQL: "SELECT MAX(SUM(salary) OVER (ORDER BY hire_date)) FROM employee",
		},
	},
	{
		Topic:    schema.TopicEmployee,
		Category: CategoryRowNumber,
		Template: Template{
			Question:     "What is the position of the highest-paid employee?",
			ReferenceSQL: "SELECT MAX(ROW_NUMBER() OVER (ORDER BY salary DESC)) FROM employee",
		},
	},
	{
		Topic:    schema.TopicEmployee,
		Category: CategoryAverage,
		Template: Template{
			Question:     "What is the average salary of employees as of the most recent hire date?",
			ReferenceSQL: "SELECT MAX(AVG(salary) OVER (ORDER BY hire_date)) FROM employee",
		},
	},
	{
		Topic:    schema.TopicEmployee,
		Category: CategoryCount,
		Template: Template{
			Question:     "How many employees have been hired up to the most recent hire date?",
			ReferenceSQL: "SELECT MAX(COUNT(*) OVER (ORDER BY hire_date)) FROM employee",
		},
	},
	{
		Topic:    schema.TopicEmployee,
		Category: CategoryRank,
		Template: Template{
			Question:     "Among all positions, what is the highest salary rank?",
			ReferenceSQL: "SELECT MAX(RANK() OVER (PARTITION BY position ORDER BY salary DESC)) FROM employee",
		},
	},
	{
		Topic:    schema.TopicEmployee,
		Category: CategoryLead,
		Template: Template{
			Question:     "What is the salary difference between the top earner and the next highest-paid employee?",
			ReferenceSQL: "SELECT MAX(salary - LEAD(salary) OVER (ORDER BY salary DESC)) FROM employee WHERE salary IS NOT NULL",
		},
	},
	{
		Topic:    schema.TopicEmployee,
		Category: CategoryLag,
		Template: Template{
			Question:     "Calculate the maximum salary difference between each employee and the one who was hired just before them.",
			ReferenceSQL: "SELECT MAX(salary - LAG(salary) OVER (ORDER BY hire_date)) FROM employee WHERE salary IS NOT NULL",
		},
	},
	{
		Topic:    schema.TopicEmployee,
		Category: CategoryFirstValue,
		Template: Template{
			Question:     "What is the highest starting salary among all positions?",
			ReferenceSQL: "SELECT MAX(FIRST_VALUE(salary) OVER (PARTITION BY position ORDER BY hire_date)) FROM employee",
		},
	},
	{
		Topic:    schema.TopicEmployee,
		Category: CategoryLastValue,
		Template: Template{
			Question:     "What is the lowest salary among the most recently hired employees in each position?",
			ReferenceSQL: "SELECT MIN(LAST_VALUE(salary) OVER (PARTITION BY position ORDER BY hire_date ROWS BETWEEN CURRENT ROW AND UNBOUNDED FOLLOWING)) FROM employee",
		},
	},
	{
		Topic:    schema.TopicEmployee,
		Category: CategoryNthValue,
		Template: Template{
			Question:     "What is the highest salary of the third most recently hired employee in any position?",
			ReferenceSQL: "SELECT MAX(NTH_VALUE(salary, 3) OVER (PARTITION BY position ORDER BY hire_date)) FROM employee",
		},
	},
	{
		Topic:    schema.TopicEmployee,
		Category: CategoryPercentRank,
		Template: Template{
			Question:     "What is the maximum percentile rank of employees based on salary within each position?",
			ReferenceSQL: "SELECT MAX(PERCENT_RANK() OVER (PARTITION BY position ORDER BY salary DESC)) FROM employee",
		},
	},
	{
		Topic:    schema.TopicEmployee,
		Category: CategoryCumulativeDistribution,
		Template: Template{
			Question:     "For the highest-paid employee in their position, what is their cumulative distribution?",
			ReferenceSQL: "SELECT MAX(CUME_DIST() OVER (PARTITION BY position ORDER BY salary DESC)) FROM employee",
		},
	},
	{
		Topic:    schema.TopicEmployee,
		Category: CategoryPercentileContinuous,
		Template: Template{
			Question:     "Across all positions, what is the highest median salary?",
			ReferenceSQL: "SELECT MAX(PERCENTILE_CONT(0.5) WITHIN GROUP (ORDER BY salary) OVER (PARTITION BY position)) FROM employee",
		},
	},
	{
		Topic:    schema.TopicEmployee,
		Category: CategoryPercentileDiscrete,
		Template: Template{
			Question:     "What is the maximum discrete median salary across all positions?",
			ReferenceSQL: "SELECT MAX(PERCENTILE_DISC(0.5) WITHIN GROUP (ORDER BY salary) OVER (PARTITION BY position)) FROM employee",
		},
	},
	// Sales
	{
		Topic:    schema.TopicSales,
		Category: CategoryCumulativeSum,
		Template: Template{
			Question:     "What is the total cumulative sale amount up to the most recent sale date?",
			ReferenceSQL: "SELECT MAX(SUM(sale_amount) OVER (ORDER BY sale_date)) FROM sales",
		},
	},
	{
		Topic:    schema.TopicSales,
		Category: CategoryRowNumber,
		Template: Template{
			Question:     "What is the position of the sale with the highest amount?",
			ReferenceSQL: "SELECT MAX(ROW_NUMBER() OVER (ORDER BY sale_amount DESC)) FROM sales",
		},
	},
	{
		Topic:    schema.TopicSales,
		Category: CategoryAverage,
		Template: Template{
			Question:     "What is the average sale amount up to the most recent sale date?",
			ReferenceSQL: "SELECT MAX(AVG(sale_amount) OVER (ORDER BY sale_date)) FROM sales",
		},
	},
	{
		Topic:    schema.TopicSales,
		Category: CategoryCount,
		Template: Template{
			Question:     "How many sales have been made up to the most recent sale date?",
			ReferenceSQL: "SELECT MAX(COUNT(*) OVER (ORDER BY sale_date)) FROM sales",
		},
	},
	{
		Topic:    schema.TopicSales,
		Category: CategoryRank,
		Template: Template{
			Question:     "What is the highest rank of sales based on the sale amount?",
			ReferenceSQL: "SELECT MAX(RANK() OVER (ORDER BY sale_amount DESC)) FROM sales",
		},
	},
	{
		Topic:    schema.TopicSales,
		Category: CategoryLead,
		Template: Template{
			Question:     "What is the difference in sale amount between the largest sale and the following sale?",
			ReferenceSQL: "SELECT MAX(sale_amount - LEAD(sale_amount) OVER (ORDER BY sale_amount DESC)) FROM sales WHERE sale_amount IS NOT NULL",
		},
	},
	{
		Topic:    schema.TopicSales,
		Category: CategoryLag,
		Template: Template{
			Question:     "What is the sale amount difference between each sale and the sale that occurred just before it, sorted by sale date?",
			ReferenceSQL: "SELECT MAX(sale_amount - LAG(sale_amount) OVER (ORDER BY sale_date)) FROM sales WHERE sale_amount IS NOT NULL",
		},
	},
	{
		Topic:    schema.TopicSales,
		Category: CategoryFirstValue,
		Template: Template{
			Question:     "What is the initial highest sale amount recorded?",
			ReferenceSQL: "SELECT MAX(FIRST_VALUE(sale_amount) OVER (ORDER BY sale_date)) FROM sales",
		},
	},
	{
		Topic:    schema.TopicSales,
		Category: CategoryLastValue,
		Template: Template{
			Question:     "What is the lowest sale amount among the most recent sales?",
			ReferenceSQL: "SELECT MIN(LAST_VALUE(sale_amount) OVER (ORDER BY sale_date ROWS BETWEEN CURRENT ROW AND UNBOUNDED FOLLOWING)) FROM sales",
		},
	},
	{
		Topic:    schema.TopicSales,
		Category: CategoryNthValue,
		Template: Template{
			Question:     "What is the sale amount of the third most recent sale?",
			ReferenceSQL: "SELECT MAX(NTH_VALUE(sale_amount, 3) OVER (ORDER BY sale_date)) FROM sales",
		},
	},
	{
		Topic:    schema.TopicSales,
		Category: CategoryPercentRank,
		Template: Template{
			Question:     "What is the maximum percentile rank of sales based on the sale amount?",
			ReferenceSQL: "SELECT MAX(PERCENT_RANK() OVER (ORDER BY sale_amount DESC)) FROM sales",
		},
	},
	{
		Topic:    schema.TopicSales,
		Category: CategoryCumulativeDistribution,
		Template: Template{
			Question:     "For the largest sale, what is its cumulative distribution?",
			ReferenceSQL: "SELECT MAX(CUME_DIST() OVER (ORDER BY sale_amount DESC)) FROM sales",
		},
	},
	{
		Topic:    schema.TopicSales,
		Category: CategoryPercentileContinuous,
		Template: Template{
			Question:     "What is the highest median sale amount?",
			ReferenceSQL: "SELECT MAX(PERCENTILE_CONT(0.5) WITHIN GROUP (ORDER BY sale_amount) OVER ()) FROM sales",
		},
	},
	{
		Topic:    schema.TopicSales,
		Category: CategoryPercentileDiscrete,
		Template: Template{
			Question:     "What is the maximum discrete median sale amount?",
			ReferenceSQL: "SELECT MAX(PERCENTILE_DISC(0.5) WITHIN GROUP (ORDER BY sale_amount) OVER ()) FROM sales",
		},
	},
}

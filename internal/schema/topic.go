package schema

import (
	"fmt"
	"strings"
)

// Topic names one of the fixed relational schemas a challenge can target.
type Topic string

const (
	TopicProduct  Topic = "product"
	TopicUser     Topic = "user"
	TopicCustomer Topic = "customer"
	TopicEmployee Topic = "employee"
	TopicSales    Topic = "sales"
)

// allTopics is the canonical topic order.
var allTopics = []Topic{
	TopicProduct,
	TopicUser,
	TopicCustomer,
	TopicEmployee,
	TopicSales,
}

// definitions holds the DDL owned by each topic. The text is shown to the
// learner verbatim, so it stays in the dialect the registry queries use.
var definitions = map[Topic]string{
	TopicProduct:  "CREATE TABLE IF NOT EXISTS product (id INT AUTO_INCREMENT PRIMARY KEY, name VARCHAR(255), price DECIMAL(10,2), category VARCHAR(255), launch_date DATE)",
	TopicUser:     "CREATE TABLE IF NOT EXISTS user (id INT AUTO_INCREMENT PRIMARY KEY, username VARCHAR(255), email VARCHAR(255), order_count INT, join_date DATE, language ENUM('English', 'Spanish', 'Chinese', 'Russian', 'French', 'Arabic', 'Dutch', 'Japanese'))",
	TopicCustomer: "CREATE TABLE IF NOT EXISTS customer (id INT AUTO_INCREMENT PRIMARY KEY, name VARCHAR(255), address VARCHAR(255), loyalty ENUM('bronze', 'silver', 'gold', 'platinum'), last_order DATE, order_total DECIMAL(10, 2))",
	TopicEmployee: "CREATE TABLE IF NOT EXISTS employee (id INT AUTO_INCREMENT PRIMARY KEY, name VARCHAR(255), position VARCHAR(50), salary DECIMAL(10,2), hire_date DATE)",
	TopicSales:    "CREATE TABLE IF NOT EXISTS sales (id INT AUTO_INCREMENT PRIMARY KEY, product_id INT, customer_id INT, sale_amount DECIMAL(10,2), sale_date DATE)",
}

// Topics returns every known topic in canonical order.
// The returned slice is a copy and may be modified by the caller.
func Topics() []Topic {
	out := make([]Topic, len(allTopics))
	copy(out, allTopics)
	return out
}

// Valid reports whether t is a known topic.
func (t Topic) Valid() bool {
	_, ok := definitions[t]
	return ok
}

func (t Topic) String() string {
	return string(t)
}

// DDL returns the topic's table definition. Unknown topics yield "".
func (t Topic) DDL() string {
	return definitions[t]
}

// ParseTopic converts a user-supplied name to a Topic.
func ParseTopic(s string) (Topic, error) {
	t := Topic(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown schema topic %q", s)
	}
	return t, nil
}

// ParseTopics converts a list of names, rejecting unknown ones.
// An empty list yields every topic.
func ParseTopics(names []string) ([]Topic, error) {
	if len(names) == 0 {
		return Topics(), nil
	}
	out := make([]Topic, 0, len(names))
	for _, n := range names {
		t, err := ParseTopic(n)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

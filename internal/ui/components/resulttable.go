package components

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/abhisek/sqlchallenge/internal/sqlexec"
)

// WriteResult renders a statement result as an ASCII table. At most
// maxRows rows are printed; zero prints all of them.
func WriteResult(w io.Writer, res *sqlexec.Result, maxRows int) {
	if res == nil {
		return
	}
	if !res.Read {
		fmt.Fprintf(w, "OK, %d row(s) affected\n", res.RowsAffected)
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(res.Columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	rows := res.Rows
	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = FormatValue(v)
		}
		table.Append(cells)
	}
	table.Render()

	if hidden := len(res.Rows) - len(rows); hidden > 0 {
		fmt.Fprintf(w, "... %d more row(s)\n", hidden)
	} else {
		fmt.Fprintf(w, "%d row(s)\n", len(res.Rows))
	}
}

// RenderResult is WriteResult into a string.
func RenderResult(res *sqlexec.Result, maxRows int) string {
	var b strings.Builder
	WriteResult(&b, res, maxRows)
	return b.String()
}

// FormatValue renders one cell the way a SQL console would.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.DateTime)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

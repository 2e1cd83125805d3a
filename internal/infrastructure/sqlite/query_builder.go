package sqlite

import "github.com/martijn/taskman/internal/api/util"

// ApplyPagination appends LIMIT/OFFSET clauses for a page window
func ApplyPagination(query string, args []interface{}, f util.ListFilter) (string, []interface{}) {
	if f.PerPage > 0 {
		query += " LIMIT ?"
		args = append(args, f.PerPage)

		if f.Page > 1 {
			query += " OFFSET ?"
			args = append(args, (f.Page-1)*f.PerPage)
		}
	}
	return query, args
}

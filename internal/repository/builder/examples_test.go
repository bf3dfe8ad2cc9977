package builder_test

import (
	"fmt"

	"github.com/locvowork/hr_records/internal/repository/builder"
)

// Example_joinedSelect builds the joined attendance read.
func Example_joinedSelect() {
	sql, args := builder.NewSQLBuilder().
		Select("a.id", "a.employee_id", "e.name", "a.date", "a.status").
		From("attendance a").
		Join("INNER", "employees e", "a.employee_id = e.id").
		OrderBy("a.date DESC").
		Build()
	fmt.Println("SQL:", sql)
	fmt.Printf("Args: %v\n", args)

	// Output:
	// SQL: SELECT a.id, a.employee_id, e.name, a.date, a.status FROM attendance a INNER JOIN employees e ON a.employee_id = e.id ORDER BY a.date DESC
	// Args: []
}

// Example_insertReturning builds a create that hands back the server id.
func Example_insertReturning() {
	sql, args := builder.NewSQLBuilder().
		Insert("employees", "name", "position").
		Values("Ada", "Engineer").
		Returning("id").
		Build()
	fmt.Println("SQL:", sql)
	fmt.Printf("Args: %v\n", args)

	// Output:
	// SQL: INSERT INTO employees (name, position) VALUES ($1, $2) RETURNING id
	// Args: [Ada Engineer]
}

// Example_deleteWhere builds a single-row delete.
func Example_deleteWhere() {
	sql, args := builder.NewSQLBuilder().
		Delete("employees").
		Where("id = ?", 42).
		Build()
	fmt.Println("SQL:", sql)
	fmt.Printf("Args: %v\n", args)

	// Output:
	// SQL: DELETE FROM employees WHERE id = $1
	// Args: [42]
}

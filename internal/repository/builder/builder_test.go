package builder

import (
	"testing"
)

func TestSQLBuilder(t *testing.T) {
	t.Run("Select", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Select("id", "name").From("employees").Where("id = ?", 1).Build()
		expected := "SELECT id, name FROM employees WHERE id = $1"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 1 || args[0] != 1 {
			t.Errorf("expected args [1], got %v", args)
		}
	})

	t.Run("Insert", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Insert("employees", "name", "position").Values("Alice", "Engineer").Build()
		expected := "INSERT INTO employees (name, position) VALUES ($1, $2)"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 || args[0] != "Alice" || args[1] != "Engineer" {
			t.Errorf("expected args [Alice Engineer], got %v", args)
		}
	})

	t.Run("Insert Returning", func(t *testing.T) {
		b := NewSQLBuilder()
		query, _ := b.Insert("performance_reviews", "employee_id", "rating").
			Values(3, 5).
			Returning("id").
			Build()
		expected := "INSERT INTO performance_reviews (employee_id, rating) VALUES ($1, $2) RETURNING id"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
	})

	t.Run("Update", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Update("leave_requests").Set("status", "Approved").Where("id = ?", 1).Build()
		expected := "UPDATE leave_requests SET status = $1 WHERE id = $2"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 || args[0] != "Approved" || args[1] != 1 {
			t.Errorf("expected args [Approved 1], got %v", args)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Delete("employees").Where("id = ?", int64(7)).Build()
		expected := "DELETE FROM employees WHERE id = $1"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 1 || args[0] != int64(7) {
			t.Errorf("expected args [7], got %v", args)
		}
	})
}

func TestSQLBuilderJoinsAndPaging(t *testing.T) {
	testCases := map[string]struct {
		build    func() (string, []interface{})
		expected string
		args     int
	}{
		"join with order": {
			build: func() (string, []interface{}) {
				return NewSQLBuilder().
					Select("p.id", "e.name").
					From("payroll p").
					Join("INNER", "employees e", "p.employee_id = e.id").
					OrderBy("p.id ASC").
					Build()
			},
			expected: "SELECT p.id, e.name FROM payroll p INNER JOIN employees e ON p.employee_id = e.id ORDER BY p.id ASC",
		},
		"multiple where with limit": {
			build: func() (string, []interface{}) {
				return NewSQLBuilder().
					Select("id").
					From("employees").
					Where("name ILIKE ?", "%ann%").
					Where("department = ?", "HR").
					Limit(10).
					Build()
			},
			expected: "SELECT id FROM employees WHERE name ILIKE $1 AND department = $2 LIMIT 10",
			args:     2,
		},
		"build is repeatable": {
			build: func() (string, []interface{}) {
				b := NewSQLBuilder().Update("t").Set("a", 1).Where("id = ?", 2)
				b.Build()
				return b.Build()
			},
			expected: "UPDATE t SET a = $1 WHERE id = $2",
			args:     2,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			query, args := tc.build()
			if query != tc.expected {
				t.Errorf("expected %s, got %s", tc.expected, query)
			}
			if len(args) != tc.args {
				t.Errorf("expected %d args, got %v", tc.args, args)
			}
		})
	}
}

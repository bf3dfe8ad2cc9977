package domain

// ==================== EMPLOYEES ====================

// Employee represents the employees table
type Employee struct {
	ID                int64  `json:"id" db:"id"`
	Name              string `json:"name" db:"name"`
	Position          string `json:"position" db:"position"`
	Department        string `json:"department" db:"department"`
	EmploymentHistory string `json:"employmentHistory" db:"employment_history"`
	Contact           string `json:"contact" db:"contact"`
}

// EmployeeInput is the POST /employees body
type EmployeeInput struct {
	Name              string `json:"name"`
	Position          string `json:"position"`
	Department        string `json:"department"`
	EmploymentHistory string `json:"employmentHistory"`
	Contact           string `json:"contact"`
}

// ToEmployee builds an employee record carrying the given id.
func (in EmployeeInput) ToEmployee(id int64) Employee {
	return Employee{
		ID:                id,
		Name:              in.Name,
		Position:          in.Position,
		Department:        in.Department,
		EmploymentHistory: in.EmploymentHistory,
		Contact:           in.Contact,
	}
}

// ==================== PAYROLL ====================

// PayrollRecord represents a payroll row joined with the employee name
type PayrollRecord struct {
	ID              int64   `json:"id" db:"id"`
	EmployeeID      int64   `json:"employeeId" db:"employee_id"`
	Name            string  `json:"name" db:"name"`
	Salary          float64 `json:"salary" db:"salary"`
	HoursWorked     float64 `json:"hoursWorked" db:"hours_worked"`
	LeaveDeductions float64 `json:"leaveDeductions" db:"leave_deductions"`
	FinalSalary     float64 `json:"finalSalary" db:"final_salary"`
}

// ==================== ATTENDANCE ====================

// AttendanceStatus is the closed set of attendance states
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceLate    AttendanceStatus = "Late"
	AttendanceLeave   AttendanceStatus = "Leave"
)

// Valid reports whether s belongs to the attendance status set.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceLeave:
		return true
	}
	return false
}

// AttendanceRecord represents an attendance row joined with the employee name
type AttendanceRecord struct {
	ID         int64            `json:"id" db:"id"`
	EmployeeID int64            `json:"employeeId" db:"employee_id"`
	Name       string           `json:"name" db:"name"`
	Date       Date             `json:"date" db:"date"`
	Status     AttendanceStatus `json:"status" db:"status"`
}

// ==================== LEAVE ====================

// LeaveStatus is the closed set of leave request states
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "Pending"
	LeaveApproved LeaveStatus = "Approved"
	LeaveRejected LeaveStatus = "Rejected"
)

// Valid reports whether s belongs to the leave status set.
func (s LeaveStatus) Valid() bool {
	switch s {
	case LeavePending, LeaveApproved, LeaveRejected:
		return true
	}
	return false
}

// LeaveRequest represents a leave_requests row joined with the employee name
type LeaveRequest struct {
	ID         int64       `json:"id" db:"id"`
	EmployeeID int64       `json:"employeeId" db:"employee_id"`
	Name       string      `json:"name" db:"name"`
	Date       Date        `json:"date" db:"date"`
	Reason     string      `json:"reason" db:"reason"`
	Status     LeaveStatus `json:"status" db:"status"`
}

// LeaveRequestInput is the POST /leave-requests body. Status is optional and defaults to Pending.
type LeaveRequestInput struct {
	EmployeeID int64       `json:"employee_id"`
	Reason     string      `json:"reason"`
	Date       Date        `json:"date"`
	Status     LeaveStatus `json:"status,omitempty"`
}

// LeaveStatusInput is the PATCH /leave-requests/:id body
type LeaveStatusInput struct {
	Status LeaveStatus `json:"status"`
}

// ==================== REVIEWS ====================

// PerformanceReview represents the performance_reviews table (append-only)
type PerformanceReview struct {
	ID         int64  `json:"id" db:"id"`
	EmployeeID int64  `json:"employee_id" db:"employee_id"`
	Rating     int    `json:"rating" db:"rating"`
	Comments   string `json:"comments" db:"comments"`
	Date       Date   `json:"date" db:"date"`
}

// ReviewInput is the POST /performance-reviews body
type ReviewInput struct {
	EmployeeID int64  `json:"employee_id"`
	Rating     int    `json:"rating"`
	Comments   string `json:"comments"`
	Date       Date   `json:"date"`
}

// ==================== USERS ====================

// User represents the users table. The password column never leaves the server.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"`
}

// Credentials is the POST /login body
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the POST /login response. Token is an opaque session marker,
// not a verifiable credential.
type LoginResult struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

// Messages shared by the login endpoint and its clients.
const (
	MsgUserNotFound    = "User not found"
	MsgInvalidPassword = "Invalid password"
)

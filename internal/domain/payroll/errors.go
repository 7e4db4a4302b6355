package payroll

import "errors"

var (
	ErrPeriodLocked               = errors.New("payroll period is closed")
	ErrPeriodNotFound             = errors.New("payroll period not found")
	ErrPeriodAlreadyExists        = errors.New("payroll period already exists for this month")
	ErrPeriodAlreadyClosed        = errors.New("payroll period is already closed")
	ErrPeriodAlreadyOpen          = errors.New("payroll period is already open")
	ErrPeriodNotClosed            = errors.New("payroll period must be closed before confirmation or payment")
	ErrPeriodHasPaidConfirmations = errors.New("payroll period has paid confirmations")
	ErrConfirmationNotFound       = errors.New("payroll confirmation not found")
	ErrConfirmationRequired       = errors.New("payroll must be confirmed before it can be marked paid")
	ErrConfirmationAlreadyPaid    = errors.New("payroll confirmation is already marked paid")
	ErrSnapshotNotFound           = errors.New("payroll snapshot not found")
	ErrEmployeeNotFound           = errors.New("employee not found")
	ErrForbidden                  = errors.New("not allowed to access another employee's payroll")
)

package domain

type Enrollment struct {
	ID      int64
	UserID  int64
	Name    string
	Address *Address // nil when the enrollment has no address row
}

type Address struct {
	ID           int64
	EnrollmentID int64
	CEP          string
	Street       string
	City         string
	State        string
	Number       string
	Neighborhood string
}

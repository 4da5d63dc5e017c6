package model

// Stats is what the landing page renders. Admins see library-wide
// numbers; patrons see their own circulation.
type Stats struct {
	TotalBooks      int `json:"totalBooks"`
	TotalAuthors    int `json:"totalAuthors"`
	ActiveLoans     int `json:"activeLoans"`
	OverdueLoans    int `json:"overdueLoans"`
	AvailableCopies int `json:"availableCopies"`
}

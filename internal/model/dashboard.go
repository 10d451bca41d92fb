package model

// DashboardStats aggregates the admin landing-page counters and the ten most
// recent enquiries.
type DashboardStats struct {
	TotalEnquiries  int64      `json:"totalEnquiries"`
	NewEnquiries    int64      `json:"newEnquiries"`
	TotalDoctors    int64      `json:"totalDoctors"`
	TotalServices   int64      `json:"totalServices"`
	RecentEnquiries []*Enquiry `json:"recentEnquiries"`
}

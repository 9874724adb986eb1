package models

import "time"

// ComplaintStatus is the backend-owned lifecycle state of a complaint.
type ComplaintStatus string

// Complaint status constants
const (
	StatusNew        ComplaintStatus = "new"
	StatusAssigned   ComplaintStatus = "assigned"
	StatusInProgress ComplaintStatus = "in_progress"
	StatusResolved   ComplaintStatus = "resolved"
	StatusRejected   ComplaintStatus = "rejected"
)

// AllStatuses lists statuses in display order.
var AllStatuses = []ComplaintStatus{
	StatusNew,
	StatusAssigned,
	StatusInProgress,
	StatusResolved,
	StatusRejected,
}

// Valid reports whether s is one of the known statuses.
func (s ComplaintStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Representative roles
const (
	RoleMNA = "MNA"
	RoleMPA = "MPA"
)

// Vote directions
const (
	VoteSupport = 1
	VoteUrgent  = -1
)

// Connectivity is the dashboard's view of the backend.
type Connectivity string

const (
	ConnectivityLoading  Connectivity = "loading"
	ConnectivityLive     Connectivity = "live"
	ConnectivityDegraded Connectivity = "degraded"
)

// DemoMode reports whether mutating actions are disabled.
func (c Connectivity) DemoMode() bool {
	return c == ConnectivityDegraded
}

// DataSource tells where a piece of dashboard data came from.
type DataSource string

const (
	SourceNone DataSource = ""
	SourceLive DataSource = "live"
	SourceMock DataSource = "mock"
)

// Backend request types

type CreateComplaintRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Address     string  `json:"address,omitempty"`
}

type VoteRequest struct {
	VoterID string `json:"voter_id"`
	Value   int    `json:"value"`
}

// Backend domain types

type Representative struct {
	ID       int64   `json:"id"`
	Role     string  `json:"role"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	District *string `json:"district,omitempty"`
}

type Complaint struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	Lat         float64         `json:"lat"`
	Lng         float64         `json:"lng"`
	Address     *string         `json:"address,omitempty"`
	AreaCodeNA  *string         `json:"area_code_na,omitempty"`
	AreaCodePS  *string         `json:"area_code_ps,omitempty"`
	Status      ComplaintStatus `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	ResolvedAt  *time.Time      `json:"resolved_at,omitempty"`

	// Only present when the backend returns complaint summaries
	MNA        *Representative `json:"mna,omitempty"`
	MPA        *Representative `json:"mpa,omitempty"`
	VotesTotal int             `json:"votes_total,omitempty"`
	VotesUp    int             `json:"votes_up,omitempty"`
	VotesDown  int             `json:"votes_down,omitempty"`
}

type ImpactStats struct {
	IssuesResolved     int     `json:"issues_resolved"`
	AreasCovered       int     `json:"areas_covered"`
	ActiveUsers        int     `json:"active_users"`
	AvgResolutionHours float64 `json:"avg_resolution_hours"`
}

// Dashboard types

// ComplaintDraft is the raw complaint form as typed by the user.
type ComplaintDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Lat         string `json:"lat"`
	Lng         string `json:"lng"`
	Address     string `json:"address"`
}

// Default form coordinates (central Karachi)
const (
	DefaultDraftLat = "24.8607"
	DefaultDraftLng = "67.0011"
)

// NewComplaintDraft returns an empty form with the default coordinates.
func NewComplaintDraft() ComplaintDraft {
	return ComplaintDraft{Lat: DefaultDraftLat, Lng: DefaultDraftLng}
}

type DashboardStats struct {
	Total            int                     `json:"total"`
	ByStatus         map[ComplaintStatus]int `json:"by_status"`
	Resolved         int                     `json:"resolved"`
	InProgress       int                     `json:"in_progress"`
	New              int                     `json:"new"`
	ResolutionRate   int                     `json:"resolution_rate"` // percent
	CleanlinessScore int                     `json:"cleanliness_score"`
}

// DisplayStrings holds preformatted values for the impact cards.
type DisplayStrings struct {
	IssuesResolved string `json:"issues_resolved"`
	AreasCovered   string `json:"areas_covered"`
	ActiveUsers    string `json:"active_users"`
	AvgResolution  string `json:"avg_resolution"`
}

type ComplaintView struct {
	Complaint
	Busy        bool   `json:"busy"`
	ReportedAgo string `json:"reported_ago"`
	ResolvedAgo string `json:"resolved_ago,omitempty"`
}

type DashboardSnapshot struct {
	Connectivity         Connectivity    `json:"connectivity"`
	DemoMode             bool            `json:"demo_mode"`
	Advisory             string          `json:"advisory,omitempty"`
	Loading              bool            `json:"loading"`
	Creating             bool            `json:"creating"`
	Seeding              bool            `json:"seeding"`
	Complaints           []ComplaintView `json:"complaints"`
	ComplaintsSource     DataSource      `json:"complaints_source"`
	ComplaintsGeneration uint64          `json:"complaints_generation"`
	Impact               *ImpactStats    `json:"impact"`
	ImpactSource         DataSource      `json:"impact_source"`
	Stats                DashboardStats  `json:"stats"`
	Display              DisplayStrings  `json:"display"`
	Draft                ComplaintDraft  `json:"draft"`
}

// Area scoring bands
const (
	BandGood = "good"
	BandFair = "fair"
	BandPoor = "poor"
)

type AreaStats struct {
	Name               string  `json:"name"`
	NACode             string  `json:"na_code"`
	PSCode             string  `json:"ps_code"`
	TotalComplaints    int     `json:"total_complaints"`
	Resolved           int     `json:"resolved"`
	InProgress         int     `json:"in_progress"`
	AvgResolutionHours float64 `json:"avg_resolution_hours"`
	CleanlinessScore   int     `json:"cleanliness_score"`
	Band               string  `json:"band"`
}

type AreasResponse struct {
	Source              DataSource  `json:"source"`
	Areas               []AreaStats `json:"areas"`
	TotalComplaints     int         `json:"total_complaints"`
	TotalResolved       int         `json:"total_resolved"`
	AvgCleanlinessScore int         `json:"avg_cleanliness_score"`
}

// Journal types

// Activity actions
const (
	ActionLoadComplaints  = "load_complaints"
	ActionLoadImpact      = "load_impact"
	ActionVote            = "vote"
	ActionCreateComplaint = "create_complaint"
	ActionSeed            = "seed"
)

// Activity outcomes
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeRejected = "rejected"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
)

type Activity struct {
	ID           string       `json:"id"`
	Action       string       `json:"action"`
	ComplaintID  *int64       `json:"complaint_id,omitempty"`
	Outcome      string       `json:"outcome"`
	Advisory     string       `json:"advisory,omitempty"`
	Connectivity Connectivity `json:"connectivity"`
	OccurredAt   time.Time    `json:"occurred_at"`
}

// Service request/response types

type CastVoteRequest struct {
	Value int `json:"value"`
}

type ActionResponse struct {
	OK           bool         `json:"ok"`
	Advisory     string       `json:"advisory,omitempty"`
	Connectivity Connectivity `json:"connectivity"`
}

type ActivityResponse struct {
	Entries []Activity `json:"entries"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

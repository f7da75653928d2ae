package comicvine

// Image holds the remote cover art references for an issue or volume.
type Image struct {
	OriginalURL string `json:"original_url"`
	MediumURL   string `json:"medium_url"`
}

// NameRef is a reference carrying only a display name and, when the API
// provides one, a stable id. Characters and story arcs never carry ids at
// this tier.
type NameRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Credit is one person's free-text role on an issue. Role may pack several
// roles into one string ("penciler, inker").
type Credit struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Issue is the single-issue detail record.
type Issue struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	IssueNumber      string    `json:"issue_number"`
	Deck             string    `json:"deck"`
	Description      string    `json:"description"`
	CoverDate        string    `json:"cover_date"`
	StoreDate        string    `json:"store_date"`
	Volume           NameRef   `json:"volume"`
	PersonCredits    []Credit  `json:"person_credits"`
	CharacterCredits []NameRef `json:"character_credits"`
	StoryArcCredits  []NameRef `json:"story_arc_credits"`
	Image            Image     `json:"image"`
}

// IssueSummary is the abbreviated issue record inside volume listings.
type IssueSummary struct {
	ID          int    `json:"id"`
	IssueNumber string `json:"issue_number"`
	Name        string `json:"name"`
}

// Volume is the single-volume detail record.
type Volume struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	StartYear     string         `json:"start_year"`
	Publisher     NameRef        `json:"publisher"`
	CountOfIssues int            `json:"count_of_issues"`
	Issues        []IssueSummary `json:"issues"`
}

// Person is the single-person detail record. Birth and Death are raw date
// strings of varying granularity (full date, year-month, or year only).
type Person struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Birth string `json:"birth"`
	Death string `json:"death"`
}

// SearchResult is one hit from the keyword search across issues and
// volumes.
type SearchResult struct {
	ResourceType string   `json:"resource_type"`
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	IssueNumber  string   `json:"issue_number"`
	StartYear    string   `json:"start_year"`
	Volume       *NameRef `json:"volume"`
}

package kokkai

import "time"

// PlenaryMeetingName is the meeting-name filter for plenary sessions (本会議).
const PlenaryMeetingName = "本会議"

// Meeting is a single meeting record returned by the records API.
// Session and Date drive aggregation; the remaining fields are carried
// through from the API unmodified and play no role in the date-range
// computation.
type Meeting struct {
	Session int       // legislative session number (回次)
	Date    time.Time // meeting date, midnight UTC
	Name    string    // meeting name (nameOfMeeting)
	Issue   string    // issue number within the session (号数)
	IssueID string    // upstream record identifier
	URL     string    // public URL of the meeting record
}

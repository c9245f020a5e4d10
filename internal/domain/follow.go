package domain

// FollowStatus is the confirmed state returned by the follow toggle
// endpoints.
type FollowStatus struct {
	Following bool `json:"following"`
}

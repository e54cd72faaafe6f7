// internal/notify/milestones.go
package notify

// Milestones are the application counts that trigger a poster notification.
// The list is ordered but matching is exact: a count that jumps past a value
// without landing on it never fires retroactively.
var Milestones = []int{1, 5, 10, 20, 50, 100}

// matchMilestone returns the milestone equal to count, or 0 when count is
// not a milestone.
func matchMilestone(count int) int {
	for _, m := range Milestones {
		if count == m {
			return m
		}
	}
	return 0
}

package workday

// Project returns the clock time at which target will be reached, or, once
// it is reached, the clock time of the next whole hour of overtime. The
// result wraps past midnight. It is false only when now is unknown.
func Project(worked, target Duration, now *TimeOfDay) (TimeOfDay, bool) {
	if now == nil {
		return 0, false
	}
	return wrap(int(*now) + int(untilMilestone(worked, target))), true
}

// untilMilestone is always positive when worked >= target: an exact whole
// hour of overtime points at the following hour.
func untilMilestone(worked, target Duration) Duration {
	if worked < target {
		return target - worked
	}
	over := worked - target
	return SecondsPerHour - over%SecondsPerHour
}

// milestone fills the milestone fields of s.
func (s *Summary) milestone(target Duration, now *TimeOfDay) {
	at, ok := Project(s.Worked, target, now)
	if !ok {
		return
	}
	s.Milestone = &at
	s.ToMilestone = untilMilestone(s.Worked, target)
	s.NextDay = int(*now)+int(s.ToMilestone) >= SecondsPerDay
	if s.Worked < target {
		s.MilestoneKind = MilestoneTarget
		return
	}
	s.MilestoneKind = MilestoneOvertimeHour
	s.OvertimeGoal = s.Overtime + s.ToMilestone
}

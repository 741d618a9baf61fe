package scheduler

import "fmt"

// ClassifyDeadline maps a goal's days-until-deadline and the user's
// local hour onto a reminder message. First match wins; anything
// outside the table returns ok=false.
//
// Only three hours (9, 14, 20) ever produce output, which keeps the
// table finite and avoids repeating the same reminder within a day.
// Overdue goals are mentioned exactly once, the morning after the
// deadline, so the bot never turns into a nag.
func ClassifyDeadline(daysUntil int, localHour int, goalText string) (string, bool) {
	switch daysUntil {
	case 0:
		switch localHour {
		case 9:
			return fmt.Sprintf(
				"🚨 Start your day strong! Today is the deadline for %q!\nYou've got a full day ahead to complete this. You can do it! 💪",
				goalText), true
		case 14:
			return fmt.Sprintf(
				"⏰ Afternoon check-in: Your goal %q is due today.\nHow's your progress? Still on track to complete it?",
				goalText), true
		case 20:
			return fmt.Sprintf(
				"🌙 Evening reminder: Your goal %q is due today.\nLet's make sure you finish it before the day ends!",
				goalText), true
		}
	case 1:
		switch localHour {
		case 9:
			return fmt.Sprintf(
				"⏰ Start your day strong! Your goal %q is due tomorrow.\nLet's make significant progress today!",
				goalText), true
		case 14:
			return fmt.Sprintf(
				"📊 Afternoon check-in: One day left for %q.\nTake some time this afternoon to work on it!",
				goalText), true
		case 20:
			return fmt.Sprintf(
				"🎯 Evening reminder: %q is due tomorrow.\nConsider planning your schedule to finish it!",
				goalText), true
		}
	case 3:
		if localHour == 9 {
			return fmt.Sprintf(
				"⚡ Three days left for %q!\nTime to kick it into high gear!",
				goalText), true
		}
	case 7:
		if localHour == 9 {
			return fmt.Sprintf(
				"📅 One week until %q is due.\nMake sure you're on track!",
				goalText), true
		}
	case -1:
		if localHour == 9 {
			return fmt.Sprintf(
				"❗ Your goal %q is now overdue.\nWould you like to update the deadline or mark it as complete?",
				goalText), true
		}
	}
	return "", false
}

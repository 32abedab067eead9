// Package render turns query results into chat replies. All output is
// deterministic markdown-ish text; the LLM narration path lives elsewhere
// and only handles general questions.
package render

import (
	"fmt"
	"strings"

	"github.com/guni-dev/guni-chatbot-go/internal/schedule"
	"github.com/guni-dev/guni-chatbot-go/internal/storage"
	"github.com/guni-dev/guni-chatbot-go/internal/stringutil"
)

// Canned replies shared across the pipeline.
const (
	GreetingReply = "Hello! 👋 I'm your Ganpat University assistant.\n\n" +
		"I can help you with:\n" +
		"• Student/Teacher information\n" +
		"• Batch timetables\n" +
		"• Room availability\n\n" +
		"What would you like to know?"

	NoPersonFoundReply = "No matching person found. Please check:\n" +
		"• Name spelling (try full name)\n" +
		"• Enrollment number (11 digits for students)\n" +
		"• Try with different search terms"

	NoStudentFoundReply = "No student found with that information."
	NoTeacherFoundReply = "No teacher found with that information."

	multiResultCap = 5
)

// hhmm shortens an "HH:MM:SS" time to "HH:MM" for display.
func hhmm(t string) string {
	if len(t) >= 5 {
		return t[:5]
	}
	if t == "" {
		return "N/A"
	}
	return t
}

// nullText treats NULL and blank registrar columns the same way.
func nullText(valid bool, s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, valid && s != ""
}

// Students formats a student lookup result. A single match gets the full
// profile with the parent-phone fallback; multiple matches get a capped list.
func Students(students []storage.Student) string {
	if len(students) == 0 {
		return NoStudentFoundReply
	}

	if len(students) == 1 {
		s := students[0]

		prefix := "They"
		if g, ok := nullText(s.Gender.Valid, s.Gender.String); ok {
			switch strings.ToLower(g) {
			case "m":
				prefix = "He"
			case "f":
				prefix = "She"
			}
		}

		var b strings.Builder
		fmt.Fprintf(&b, "I found **%s** (Enrollment: %s).\n\n", stringutil.TitleCaseName(s.Name), s.EnrollmentNo)
		fmt.Fprintf(&b, "%s is a student in **%s**, currently in **Semester %s**, Class **%s**.\n\n",
			prefix, s.Branch, s.Semester, s.Class)

		if phone, ok := nullText(s.Phone.Valid, s.Phone.String); ok {
			fmt.Fprintf(&b, "📱 Phone: %s\n", phone)
		} else if parent, ok := nullText(s.ParentPhone.Valid, s.ParentPhone.String); ok {
			fmt.Fprintf(&b, "📱 Phone: Student's number not listed, but parent's number is **%s**\n", parent)
		} else {
			b.WriteString("📱 Phone: Not available\n")
		}

		email := "N/A"
		if e, ok := nullText(s.Email.Valid, s.Email.String); ok {
			email = e
		}
		fmt.Fprintf(&b, "📧 Email: %s\n", email)

		return b.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found **%d students** matching your query:\n\n", len(students))
	for i, s := range students {
		if i == multiResultCap {
			break
		}
		fmt.Fprintf(&b, "%d. **%s** - %s (%s)\n", i+1, stringutil.TitleCaseName(s.Name), s.EnrollmentNo, s.Class)
	}
	if len(students) > multiResultCap {
		fmt.Fprintf(&b, "\n...and %d more. Please be more specific.", len(students)-multiResultCap)
	}
	return b.String()
}

// Teachers formats a teacher lookup result.
func Teachers(teachers []storage.Teacher) string {
	if len(teachers) == 0 {
		return NoTeacherFoundReply
	}

	if len(teachers) == 1 {
		t := teachers[0]
		email := "N/A"
		if e, ok := nullText(t.Email.Valid, t.Email.String); ok {
			email = e
		}
		return fmt.Sprintf("I found **%s** (Employee ID: %s).\n\n📧 Email: %s\n",
			stringutil.TitleCaseName(t.Name), t.EmployeeID, email)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found **%d teachers** matching your query:\n\n", len(teachers))
	for i, t := range teachers {
		if i == multiResultCap {
			break
		}
		fmt.Fprintf(&b, "%d. **%s** (ID: %s)\n", i+1, stringutil.TitleCaseName(t.Name), t.EmployeeID)
	}
	return b.String()
}

// isLab reports whether a lesson type or room name refers to a lab session.
func isLab(s string) bool {
	return strings.Contains(strings.ToLower(s), "lab")
}

// Timetable formats a day's schedule for a batch. An empty result set turns
// into format guidance rather than a bare "nothing found".
func Timetable(batch string, day schedule.DayCode, entries []storage.TimetableEntry) string {
	dayName := schedule.DayName(day)

	if len(entries) == 0 {
		if batch == "" {
			batch = "this batch"
		}
		return fmt.Sprintf("📅 No classes scheduled for **%s** on **%s**.\n\n"+
			"Please check the batch name format (e.g., 7CE-A-2) and day.", batch, dayName)
	}

	if batch == "" {
		batch = entries[0].BatchName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📚 **Timetable for %s** (%s)\n", batch, dayName)
	b.WriteString(strings.Repeat("━", 40) + "\n\n")

	for i, e := range entries {
		emoji, kind := "📖", "Lecture"
		if isLab(e.LessonType) {
			emoji, kind = "🔬", "Lab"
		}
		fmt.Fprintf(&b, "**%d. %s - %s**\n", i+1, hhmm(e.StartTime), hhmm(e.EndTime))
		fmt.Fprintf(&b, "   %s %s\n", emoji, e.SubjectName)
		fmt.Fprintf(&b, "   🏫 %s (%s)\n\n", e.ClassroomName, kind)
	}

	return b.String()
}

// BatchLocation formats where a batch currently is. Only the first entry is
// shown; overlapping sessions would be a data error upstream.
func BatchLocation(batch string, entries []storage.TimetableEntry) string {
	if batch == "" {
		batch = "this batch"
	}

	if len(entries) == 0 {
		return fmt.Sprintf("📍 **%s** is not in any scheduled class right now.\n\n"+
			"This could mean:\n"+
			"• It's a free period or break\n"+
			"• No class is scheduled at this time\n"+
			"• It's outside college hours", batch)
	}

	e := entries[0]
	emoji, kind := "📖", "Lecture"
	if isLab(e.LessonType) {
		emoji, kind = "🔬", "Lab"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📍 **%s** is currently in:\n\n", batch)
	fmt.Fprintf(&b, "🏫 **Room:** %s\n", e.ClassroomName)
	fmt.Fprintf(&b, "%s **Subject:** %s\n", emoji, e.SubjectName)
	fmt.Fprintf(&b, "📋 **Type:** %s\n", kind)
	fmt.Fprintf(&b, "⏰ **Time:** %s - %s\n", hhmm(e.StartTime), hhmm(e.EndTime))

	return b.String()
}

// FreeRooms formats the available-rooms list, grouped into labs and
// classrooms by room name.
func FreeRooms(rooms []storage.Room) string {
	if len(rooms) == 0 {
		return "🏫 No rooms are available at this time. All rooms are currently occupied."
	}

	var labs, classrooms []storage.Room
	for _, r := range rooms {
		if isLab(r.Name) {
			labs = append(labs, r)
		} else {
			classrooms = append(classrooms, r)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏫 **Available Rooms** (%d total)\n", len(rooms))
	b.WriteString(strings.Repeat("━", 35) + "\n\n")

	if len(labs) > 0 {
		b.WriteString("🔬 **Labs:**\n")
		for _, r := range labs {
			fmt.Fprintf(&b, "   ✅ %s\n", r.Name)
		}
		b.WriteString("\n")
	}
	if len(classrooms) > 0 {
		b.WriteString("📚 **Classrooms:**\n")
		for _, r := range classrooms {
			fmt.Fprintf(&b, "   ✅ %s\n", r.Name)
		}
	}

	return b.String()
}

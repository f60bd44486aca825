// ABOUTME: Staffing result model derived from enrollment and operating policy
// ABOUTME: Sections, full-time teachers, and variable substitute teacher-days

package models

// StaffingResult holds the staffing requirement derived deterministically
// from a ProgramSelection and the session's OperatingPolicy.
// Invariant: Sections = ceil(students / sectionSize), always >= 1.
type StaffingResult struct {
	Sections            int `json:"sections"`
	FullTimeTeachers    int `json:"full_time_teachers"`
	VariableTeacherDays int `json:"variable_teacher_days"`
	TeacherDayCost      int `json:"teacher_day_cost"`
}

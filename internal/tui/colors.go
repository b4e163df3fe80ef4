package tui

// Color constants for the taskdep board theme
const (
	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (titles, user input)
	ColorSecondaryText = "#B1B8C7" // Secondary text
	ColorDisabledText  = "#6D7383" // Disabled/muted text
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors
	ColorAccentMain   = "#7C3AED" // Accent elements, active borders
	ColorAccentBright = "#A78BFA" // Highlights, selected row

	// State Colors
	ColorBlocked = "#EF4444" // Blocked tasks
	ColorDone    = "#22C55E" // Completed tasks
	ColorWarning = "#F59E0B" // Overdue due dates
)

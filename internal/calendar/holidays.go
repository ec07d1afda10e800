package calendar

// b3Holidays lists B3 exchange holidays as ISO dates. Future years are
// added as the exchange publishes its calendar.
var b3Holidays = []string{
	"2025-01-01", "2025-01-25", "2025-03-03", "2025-03-04", "2025-04-18",
	"2025-04-21", "2025-05-01", "2025-06-19", "2025-07-09", "2025-09-07",
	"2025-10-12", "2025-11-02", "2025-11-15", "2025-11-20", "2025-12-24",
	"2025-12-25", "2025-12-31",
	"2026-01-01", "2026-01-25", "2026-02-16", "2026-02-17", "2026-04-03",
	"2026-04-21", "2026-05-01", "2026-06-04", "2026-07-09", "2026-09-07",
	"2026-10-12", "2026-11-02", "2026-11-15", "2026-11-20", "2026-12-25",
}

// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, request limits); AppConfig is everything specific to the club
// site: the Mongo connection, session cookies, the donor spreadsheet and
// the first super admin account.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionDomain string // Cookie domain (blank means current host)

	// Donor roster (public "Thiện nguyện" page) — Google Sheets values range
	DonorSheetID    string // Spreadsheet ID
	DonorSheetRange string // Values range, e.g. "Donors!A:D"
	DonorAPIKey     string // Sheets API key

	// SuperAdmin bootstrap: creates or promotes this account on startup.
	SuperAdminEmail    string
	SuperAdminPassword string
}

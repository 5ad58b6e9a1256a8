package version

// Version is the current version of sqlite2mysql.
// Can be overridden at build time with -ldflags "-X ...version.Version=..."
var Version = "1.0.0"

// Name is the application name.
const Name = "sqlite2mysql"

// Description is a short description of the application.
const Description = "Convert a SQLite database file to a MySQL dump"

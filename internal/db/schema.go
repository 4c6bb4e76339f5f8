package db

// SchemaSQL is the complete modern schema for fresh fieldops installs.
// This schema reflects the current state after all migrations.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// it via GetSchemaSQL(): if repository code references a column that does not
// exist here, tests fail immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in internal/db/migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Users (admins, clerks, agents)
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	full_name TEXT NOT NULL,
	phone_number TEXT,
	role TEXT NOT NULL CHECK(role IN ('admin', 'clerk', 'agent')),
	is_active INTEGER NOT NULL DEFAULT 1,
	is_on_shift INTEGER NOT NULL DEFAULT 0,
	current_lat REAL,
	current_lng REAL,
	last_location_update DATETIME,
	address_line_1 TEXT,
	city TEXT,
	postcode TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Properties (synced reference data from the external inventory system)
CREATE TABLE IF NOT EXISTS properties (
	id TEXT PRIMARY KEY,
	reference_number TEXT,
	address_line_1 TEXT,
	address_line_2 TEXT,
	city TEXT,
	postcode TEXT NOT NULL,
	latitude REAL,
	longitude REAL,
	property_type TEXT,
	bedrooms INTEGER DEFAULT 0,
	client_name TEXT,
	notes TEXT,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_properties_postcode ON properties(postcode);

-- Jobs (lifecycle-managed; status mutated only via transitions)
CREATE TABLE IF NOT EXISTS jobs (
	id TEXT PRIMARY KEY,
	property_id TEXT NOT NULL,
	created_by_user_id TEXT,
	assigned_clerk_id TEXT,
	assigned_agent_id TEXT,
	job_type TEXT NOT NULL DEFAULT 'inspection',
	priority TEXT NOT NULL CHECK(priority IN ('low', 'normal', 'high', 'emergency')) DEFAULT 'normal',
	appointment_date DATETIME NOT NULL,
	estimated_duration_minutes INTEGER DEFAULT 60,
	access_instructions TEXT,
	key_location TEXT,
	admin_notes TEXT,
	status TEXT NOT NULL CHECK(status IN ('created', 'assigned', 'in_progress', 'checked_in', 'completed', 'cancelled')) DEFAULT 'created',
	start_time DATETIME,
	check_in_time DATETIME,
	complete_time DATETIME,
	check_in_lat REAL,
	check_in_lng REAL,
	location_warning_flag INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (property_id) REFERENCES properties(id),
	FOREIGN KEY (created_by_user_id) REFERENCES users(id),
	FOREIGN KEY (assigned_clerk_id) REFERENCES users(id),
	FOREIGN KEY (assigned_agent_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
CREATE INDEX IF NOT EXISTS idx_jobs_assigned_clerk ON jobs(assigned_clerk_id);

-- Assignment logs (append-only audit trail; never updated or deleted)
CREATE TABLE IF NOT EXISTS assignment_logs (
	id TEXT PRIMARY KEY,
	job_id TEXT NOT NULL,
	from_status TEXT NOT NULL,
	to_status TEXT NOT NULL,
	previous_clerk_id TEXT,
	new_clerk_id TEXT,
	action_type TEXT NOT NULL,
	actor_user_id TEXT,
	reason TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_assignment_logs_job ON assignment_logs(job_id);

-- Notifications (in-app rows written by the transition dispatcher)
CREATE TABLE IF NOT EXISTS notifications (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	related_job_id TEXT,
	type TEXT NOT NULL,
	title TEXT NOT NULL,
	body TEXT,
	channel TEXT NOT NULL CHECK(channel IN ('in_app', 'email', 'sms')) DEFAULT 'in_app',
	delivery_status TEXT NOT NULL DEFAULT 'sent',
	is_read INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
	FOREIGN KEY (related_job_id) REFERENCES jobs(id)
);

CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id);

-- Clerk availability (one record per clerk per date)
CREATE TABLE IF NOT EXISTS clerk_availability (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	available_date TEXT NOT NULL,
	is_available INTEGER NOT NULL DEFAULT 1,
	start_time TEXT NOT NULL DEFAULT '08:00',
	end_time TEXT NOT NULL DEFAULT '18:00',
	postcode TEXT,
	notes TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
	UNIQUE(user_id, available_date)
);

-- Clerk invoices (one per clerk per month)
CREATE TABLE IF NOT EXISTS clerk_invoices (
	id TEXT PRIMARY KEY,
	clerk_id TEXT NOT NULL,
	month_period TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('submitted', 'paid', 'rejected')) DEFAULT 'submitted',
	invoice_url TEXT,
	admin_notes TEXT,
	submitted_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (clerk_id) REFERENCES users(id) ON DELETE CASCADE,
	UNIQUE(clerk_id, month_period)
);

-- Chat messages (job-scoped)
CREATE TABLE IF NOT EXISTS chat_messages (
	id TEXT PRIMARY KEY,
	job_id TEXT NOT NULL,
	sender_id TEXT,
	content TEXT NOT NULL,
	attachment_url TEXT,
	is_system_message INTEGER NOT NULL DEFAULT 0,
	sent_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE CASCADE,
	FOREIGN KEY (sender_id) REFERENCES users(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_chat_messages_job ON chat_messages(job_id);
`

// InitSchema creates the schema on fresh installs and runs pending
// migrations on existing databases.
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	var tableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Fresh install - create the modern schema directly and mark all
		// migrations as applied so they never run.
		if _, err := db.Exec(SchemaSQL); err != nil {
			return err
		}
		if _, err := db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`); err != nil {
			return err
		}
		for _, m := range migrations {
			if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return err
			}
		}
		return nil
	}

	// schema_version table exists - run any pending migrations
	return RunMigrations()
}

// GetSchemaSQL returns the authoritative schema for tests.
func GetSchemaSQL() string {
	return SchemaSQL
}

package bridge

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Database models
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	APIKey       string    `json:"api_key"`
	CreatedAt    time.Time `json:"created_at"`
}

type Device struct {
	ID         int       `json:"id"`
	DeviceID   string    `json:"device_id"`
	Name       string    `json:"name"`
	DeviceType string    `json:"device_type"`
	Address    string    `json:"address"`
	AuthToken  string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// ActionRecord is one audit-log row for an action proxied to a device
type ActionRecord struct {
	ID        int       `json:"id"`
	DeviceID  string    `json:"device_id"`
	Action    string    `json:"action"`
	Success   bool      `json:"success"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Database handles SQLite database operations
type Database struct {
	db *sql.DB
}

// NewDatabase creates a new database connection
func NewDatabase(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	database := &Database{db: db}

	if err := database.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

// initSchema creates the database tables
func (d *Database) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			api_key TEXT UNIQUE NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS devices (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			device_id TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			device_type TEXT NOT NULL,
			address TEXT NOT NULL,
			auth_token TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS actions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			device_id TEXT NOT NULL,
			action TEXT NOT NULL,
			success INTEGER NOT NULL,
			detail TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_api_key ON users(api_key)`,
		`CREATE INDEX IF NOT EXISTS idx_devices_device_id ON devices(device_id)`,
		`CREATE INDEX IF NOT EXISTS idx_actions_device_id ON actions(device_id)`,
	}

	for _, query := range queries {
		if _, err := d.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// CreateUser creates a user with a freshly generated API key
func (d *Database) CreateUser(username, passwordHash string) (*User, error) {
	apiKey := uuid.New().String()

	result, err := d.db.Exec(
		`INSERT INTO users (username, password_hash, api_key) VALUES (?, ?, ?)`,
		username, passwordHash, apiKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user id: %w", err)
	}

	return d.GetUser(int(id))
}

// GetUser fetches a user by numeric id
func (d *Database) GetUser(id int) (*User, error) {
	var user User
	err := d.db.QueryRow(
		`SELECT id, username, password_hash, api_key, created_at FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.APIKey, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	return &user, nil
}

// GetUserByUsername fetches a user by username
func (d *Database) GetUserByUsername(username string) (*User, error) {
	var user User
	err := d.db.QueryRow(
		`SELECT id, username, password_hash, api_key, created_at FROM users WHERE username = ?`, username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.APIKey, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	return &user, nil
}

// AddDevice registers a device. device_id is assigned if empty.
func (d *Database) AddDevice(device Device) (*Device, error) {
	if device.DeviceID == "" {
		device.DeviceID = uuid.New().String()
	}

	_, err := d.db.Exec(
		`INSERT INTO devices (device_id, name, device_type, address, auth_token) VALUES (?, ?, ?, ?, ?)`,
		device.DeviceID, device.Name, device.DeviceType, device.Address, device.AuthToken,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add device: %w", err)
	}

	return d.GetDevice(device.DeviceID)
}

// GetDevice fetches a device by its device_id
func (d *Database) GetDevice(deviceID string) (*Device, error) {
	var device Device
	err := d.db.QueryRow(
		`SELECT id, device_id, name, device_type, address, auth_token, created_at
		 FROM devices WHERE device_id = ?`, deviceID,
	).Scan(&device.ID, &device.DeviceID, &device.Name, &device.DeviceType,
		&device.Address, &device.AuthToken, &device.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("device not found: %w", err)
	}
	return &device, nil
}

// ListDevices returns all registered devices
func (d *Database) ListDevices() ([]Device, error) {
	rows, err := d.db.Query(
		`SELECT id, device_id, name, device_type, address, auth_token, created_at
		 FROM devices ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer rows.Close()

	var devices []Device
	for rows.Next() {
		var device Device
		if err := rows.Scan(&device.ID, &device.DeviceID, &device.Name, &device.DeviceType,
			&device.Address, &device.AuthToken, &device.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, device)
	}

	return devices, rows.Err()
}

// RemoveDevice deletes a device by its device_id
func (d *Database) RemoveDevice(deviceID string) error {
	result, err := d.db.Exec(`DELETE FROM devices WHERE device_id = ?`, deviceID)
	if err != nil {
		return fmt.Errorf("failed to remove device: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deletion: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("device not found: %s", deviceID)
	}

	return nil
}

// RecordAction appends an audit-log row
func (d *Database) RecordAction(deviceID, action string, success bool, detail string) error {
	_, err := d.db.Exec(
		`INSERT INTO actions (device_id, action, success, detail) VALUES (?, ?, ?, ?)`,
		deviceID, action, success, detail,
	)
	if err != nil {
		return fmt.Errorf("failed to record action: %w", err)
	}
	return nil
}

// ListActions returns the most recent audit rows for a device
func (d *Database) ListActions(deviceID string, limit int) ([]ActionRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := d.db.Query(
		`SELECT id, device_id, action, success, detail, created_at
		 FROM actions WHERE device_id = ? ORDER BY id DESC LIMIT ?`,
		deviceID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}
	defer rows.Close()

	var records []ActionRecord
	for rows.Next() {
		var record ActionRecord
		var detail sql.NullString
		if err := rows.Scan(&record.ID, &record.DeviceID, &record.Action,
			&record.Success, &detail, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}
		record.Detail = detail.String
		records = append(records, record)
	}

	return records, rows.Err()
}

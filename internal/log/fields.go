package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldUserID      = "user_id"
	FieldProjectID   = "project_id"
	FieldLabelID     = "label_id"
	FieldItemUUID    = "item_uuid"
	FieldSessionUUID = "session_uuid"
	FieldDBPath      = "db_path"
	FieldDataDir     = "data_dir"
	FieldMode        = "mode"
	FieldCount       = "count"
)

// Components defines standard component names.
const (
	ComponentApp      = "app"
	ComponentStorage  = "storage"
	ComponentUsers    = "users"
	ComponentProjects = "projects"
	ComponentLabels   = "labels"
	ComponentItems    = "items"
	ComponentSessions = "sessions"
	ComponentBackend  = "backend"
	ComponentSeed     = "seed"
)

// Operations defines standard operation names.
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpLogin    = "login"
	OpLogout   = "logout"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

package repository

// Log messages
const (
	LogMsgStorageRetry = "Transient storage error, retrying"
)

package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpRoute  = "http_route"
	FieldHttpStatus = "http_status"
	FieldClient     = "client"

	FieldDuration      = "duration"
	FieldRequestID     = "request_id"
	FieldErrorStack    = "error_stack"
	FieldErrorCode     = "error_code"
	FieldErrorCategory = "error_category"

	FieldRunID      = "run_id"
	FieldDeviceID   = "device_id"
	FieldDetectorID = "detector_id"
	FieldStatus     = "status"
)

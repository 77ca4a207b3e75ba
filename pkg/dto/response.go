package dto

// Every endpoint answers with one of these envelope shapes.

type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type ListResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    any  `json:"data"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func Data(v any) DataResponse {
	return DataResponse{Success: true, Data: v}
}

func List(count int, v any) ListResponse {
	return ListResponse{Success: true, Count: count, Data: v}
}

func Message(msg string) MessageResponse {
	return MessageResponse{Success: true, Message: msg}
}

func Error(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Message: msg}
}

func ValidationErrors(errs []FieldError) ErrorResponse {
	return ErrorResponse{Success: false, Message: "Validation errors", Errors: errs}
}

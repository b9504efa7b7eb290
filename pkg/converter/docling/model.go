package docling

import (
	"encoding/json"
)

type TaskStatus string

const (
	TaskStatusPending TaskStatus = "pending"
	TaskStatusStarted TaskStatus = "started"
	TaskStatusSuccess TaskStatus = "success"
	TaskStatusFailure TaskStatus = "failure"
)

type Task struct {
	TaskID     string     `json:"task_id"`
	TaskStatus TaskStatus `json:"task_status"`
}

type ConvertResult struct {
	Document *ExportDocument `json:"document"`

	Status string      `json:"status"`
	Errors []ErrorItem `json:"errors"`
	Timing *float64    `json:"processing_time"`
}

type ErrorItem struct {
	Component string `json:"component_type"`
	Module    string `json:"module_name"`
	Message   string `json:"error_message"`
}

type ExportDocument struct {
	Filename string `json:"filename"`

	Text     string `json:"text_content"`
	Markdown string `json:"md_content"`

	Json json.RawMessage `json:"json_content"`
}

package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrPositionNotFound    = errors.New("position not found")
	ErrManagerNotFound     = errors.New("manager position not found")
	ErrSelfManager         = errors.New("position cannot be its own manager")
	ErrCyclicManager       = errors.New("assigning this manager would create a cycle")
	ErrInvalidRoleType     = errors.New("invalid role type")
	ErrInvalidBulkField    = errors.New("invalid bulk overwrite field")
	ErrInvalidShareData    = errors.New("invalid share data")
	ErrAnalysisUnavailable = errors.New("analysis is not configured")
	ErrAnalysisFailed      = errors.New("analysis provider returned an invalid result")
)

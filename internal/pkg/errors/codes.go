package errors

import "net/http"

// Configuration errors: fatal to the current run, reported to the caller.
var (
	ErrInvalidAOIMode = New(
		"INVALID_AOI_MODE",
		"Unrecognized or unset area of interest mode",
		http.StatusBadRequest,
	)

	ErrInvalidPolicy = New(
		"INVALID_POLICY",
		"Unrecognized protected-land policy",
		http.StatusBadRequest,
	)
)

// Input errors.
var (
	ErrInvalidWeight = New(
		"INVALID_WEIGHT",
		"Weight is outside the allowed range",
		http.StatusBadRequest,
	)

	ErrUnknownCriterion = New(
		"UNKNOWN_CRITERION",
		"Unknown selection criterion",
		http.StatusBadRequest,
	)

	ErrInvalidSlot = New(
		"INVALID_SLOT",
		"Picker slot does not exist",
		http.StatusBadRequest,
	)

	ErrInvalidPick = New(
		"INVALID_PICK",
		"Picked value must not be empty",
		http.StatusBadRequest,
	)

	ErrUnknownName = New(
		"UNKNOWN_NAME",
		"Name is not in the reference list",
		http.StatusBadRequest,
	)

	ErrModeMismatch = New(
		"AOI_MODE_MISMATCH",
		"Operation is not available in the current area of interest mode",
		http.StatusBadRequest,
	)

	ErrInvalidGeometry = New(
		"INVALID_GEOMETRY",
		"Invalid GeoJSON geometry",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidExportFormat = New(
		"INVALID_EXPORT_FORMAT",
		"Export format must be xlsx or csv",
		http.StatusBadRequest,
	)
)

// Session and lookup errors.
var (
	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Session not found",
		http.StatusNotFound,
	)

	ErrScenarioNotFound = New(
		"SCENARIO_NOT_FOUND",
		"No scenario result for this session",
		http.StatusNotFound,
	)

	ErrUnitNotFound = New(
		"UNIT_NOT_FOUND",
		"No spatial unit at this location",
		http.StatusNotFound,
	)

	ErrScenarioInProgress = New(
		"SCENARIO_IN_PROGRESS",
		"A scenario is already active for this session; reset it first",
		http.StatusConflict,
	)
)

// Data errors.
var (
	ErrDataIntegrity = New(
		"DATA_INTEGRITY_ERROR",
		"Spatial unit is missing an indicator value",
		http.StatusInternalServerError,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

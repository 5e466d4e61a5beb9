package handler

const (
	paramID = "id"

	msgProjectCreated  = "Project created successfully"
	msgProjectUpdated  = "Project updated successfully"
	msgProjectDeleted  = "Project deleted successfully"
	msgProjectNotFound = "Project not found"
	msgValidationFail  = "Validation failed"

	msgListProjectsFail  = "Server error while fetching projects"
	msgGetProjectFail    = "Server error while fetching project"
	msgCreateProjectFail = "Server error while creating project"
	msgUpdateProjectFail = "Server error while updating project"
	msgDeleteProjectFail = "Server error while deleting project"

	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "Invalid request body"
	msgFilesMustBeArray        = "Files must be an array"
	msgInvalidFieldValueFmt    = "Invalid value for %s"
)

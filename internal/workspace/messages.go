package workspace

const (
	msgProjectNotFound       = "Project not found"
	msgSkippingCorruptRecord = "skipping unreadable local project"
	msgMirrorFailed          = "failed to mirror remote project locally"
	msgRemoteSaveFailed      = "remote save failed, local copy kept"
	msgRemoteCreateFailed    = "remote create failed, creating project locally"
	msgRemoteDeleteFailed    = "remote delete failed"
	msgAutoSaveFailed        = "auto-save failed"
	msgProjectNameRequired   = "Project name is required"
	msgProjectRekeyed        = "project created on the server, local record re-keyed"
	msgStaleLocalRecord      = "failed to remove local record under the old id"
)

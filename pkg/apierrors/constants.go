package apierrors

const (
	MsgInvalidPayload = "invalidPayload"
	MsgInvalidTaskID  = "invalidTaskID"
	MsgMissingUser    = "missingUser"
	MsgInternal       = "internalError"

	MsgFailListTask   = "errorListTask"
	MsgFailGetTask    = "failGetTask"
	MsgFailCreateTask = "failCreateTask"
	MsgFailUpdateTask = "failUpdateTask"
	MsgFailDeleteTask = "failDeleteTask"
	MsgTaskNotFound   = "taskNotFound"
	MsgEmptyUpdate    = "emptyUpdate"
	MsgInvalidStatus  = "invalidStatus"

	MsgGroupNotFound       = "groupNotFound"
	MsgGroupEntryNotFound  = "groupEntryNotFound"
	MsgInvalidGroupEntry   = "invalidGroupEntry"
	MsgDuplicateGroupEntry = "duplicateGroupEntry"
	MsgFailGroupOperation  = "failGroupOperation"
	MsgFailReconcile       = "failReconcile"

	MsgNoAssignees       = "noAssignees"
	MsgDuplicateAssignee = "duplicateAssignee"
	MsgNoActiveGroup     = "noActiveGroup"
	MsgConsistencyGap    = "consistencyGap"
	MsgFailAssignment    = "failAssignment"

	MsgCommentNotFound  = "commentNotFound"
	MsgNotCommentAuthor = "notCommentAuthor"
	MsgFailComment      = "failComment"
	MsgFailReport       = "failReport"

	MsgFailListEmployees = "failListEmployees"
)

package hook

// BranchResolutionError means the current branch could not be determined
type BranchResolutionError struct {
	Err error
}

func (e *BranchResolutionError) Error() string {
	return "Failed to get the name of the current branch: " + e.Err.Error()
}

func (e *BranchResolutionError) Unwrap() error { return e.Err }

// DetachedHeadError means HEAD is detached and no rebase records the branch
type DetachedHeadError struct{}

func (e *DetachedHeadError) Error() string {
	return "Unable to get branch name from detached HEAD"
}

// MergeCheckError means the history query for a merge failed
type MergeCheckError struct {
	Err error
}

func (e *MergeCheckError) Error() string {
	return "Failed to check if the current branch is a merge: " + e.Err.Error()
}

func (e *MergeCheckError) Unwrap() error { return e.Err }

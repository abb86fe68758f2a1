package access

import "backend/internal/model"

// Action is the operation a caller attempts on a resource instance
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Authorize decides whether caller may perform action on target under rule.
//
// Create is governed by the single CanCreate flag and ignores target. The other
// actions are granted when the rule's "all" flag is set, or when its "own" flag
// is set and the caller owns the target. The two flags are independent grants,
// not a hierarchy. A nil rule denies unconditionally: the coarse per-request
// fetch should already have rejected, so reaching this point without a rule is
// itself a denial.
func Authorize(caller Identity, target Owned, rule *model.AccessRule, action Action) error {
	if rule == nil {
		return ErrObjectAccessDenied("no access rights")
	}

	if action == ActionCreate {
		if !rule.CanCreate {
			return ErrObjectAccessDenied("no create rights")
		}
		return nil
	}

	allFlag, ownFlag := scopeFlags(rule, action)
	if allFlag || (ownFlag && caller.Owns(target)) {
		return nil
	}
	return ErrObjectAccessDenied("")
}

// scopeFlags returns the (all, own) grants of rule for a scoped action
func scopeFlags(rule *model.AccessRule, action Action) (bool, bool) {
	switch action {
	case ActionRead:
		return rule.CanReadAll, rule.CanReadOwn
	case ActionUpdate:
		return rule.CanUpdateAll, rule.CanUpdateOwn
	case ActionDelete:
		return rule.CanDeleteAll, rule.CanDeleteOwn
	default:
		return false, false
	}
}

package domain

import "errors"

// Authentication / authorization.
var ErrUnauthenticated = errors.New("unauthenticated")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")
var ErrTenantMismatch = errors.New("tenant mismatch")
var ErrEnrollmentDischarged = errors.New("enrollment discharged")

// Not found.
var ErrTenantNotFound = errors.New("tenant not found")
var ErrProfileNotFound = errors.New("profile not found")
var ErrResidentNotFound = errors.New("resident not found")
var ErrEnrollmentNotFound = errors.New("enrollment not found")
var ErrJoinRequestNotFound = errors.New("join request not found")
var ErrAccountNotFound = errors.New("account not found")
var ErrClaimsNotFound = errors.New("claims not found")

// Conflicts.
var ErrProfileExists = errors.New("profile already exists")
var ErrAccountExists = errors.New("account already exists")
var ErrSlugTaken = errors.New("slug already taken")
var ErrAlreadyEnrolled = errors.New("already enrolled")

// Invalid input / state.
var ErrInvalidSlug = errors.New("slug must contain only lowercase letters, digits and hyphens")
var ErrInvalidPhase = errors.New("phase must be between 1 and 4")
var ErrInvalidArgument = errors.New("invalid argument")
var ErrResidentNotLinked = errors.New("link account to a resident record first")
var ErrRequestAlreadyDecided = errors.New("join request already decided")
var ErrInvalidTenantTransition = errors.New("invalid tenant status transition")

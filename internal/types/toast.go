package types

import "strings"

// ToastKind selects the visual treatment of a toast.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastWarning ToastKind = "warning"
	ToastInfo    ToastKind = "info"
)

// ToastKinds lists the recognised kinds.
var ToastKinds = []ToastKind{ToastSuccess, ToastError, ToastWarning, ToastInfo}

// ParseToastKind maps s to a recognised kind. Anything else is info.
func ParseToastKind(s string) ToastKind {
	k := ToastKind(strings.ToLower(strings.TrimSpace(s)))
	if k.Valid() {
		return k
	}
	return ToastInfo
}

// Valid reports whether k is one of the recognised kinds.
func (k ToastKind) Valid() bool {
	switch k {
	case ToastSuccess, ToastError, ToastWarning, ToastInfo:
		return true
	}
	return false
}

// Icon names the icon shown for the kind.
func (k ToastKind) Icon() string {
	switch k {
	case ToastSuccess:
		return "check-circle"
	case ToastError:
		return "alert-circle"
	case ToastWarning:
		return "alert-triangle"
	default:
		return "info"
	}
}

// ToastRequest is the input to a toast display.
type ToastRequest struct {
	Message string
	Kind    ToastKind
}

package opportunity

import (
	"fmt"
	"strings"
	"time"

	"pipelinecrm/internal/domain"
)

// nameSeparator joins the four template fields of an auto-generated name.
const nameSeparator = " - "

// GenerateName builds the canonical opportunity display name:
//
//	<organization> - <principal> - <context label> - <Mon YYYY>
//
// Pure and deterministic. Empty organization or principal names and unknown
// context codes fail with ErrInvalidInput instead of emitting a malformed
// name.
func GenerateName(orgName, principalName string, bizContext domain.Context, referenceDate time.Time) (string, error) {
	orgName = strings.TrimSpace(orgName)
	principalName = strings.TrimSpace(principalName)

	if orgName == "" {
		return "", fmt.Errorf("%w: organization name is empty", ErrInvalidInput)
	}
	if principalName == "" {
		return "", fmt.Errorf("%w: principal name is empty", ErrInvalidInput)
	}

	label := bizContext.Label()
	if label == "" {
		return "", fmt.Errorf("%w: unknown context %q", ErrInvalidInput, string(bizContext))
	}

	return strings.Join([]string{
		orgName,
		principalName,
		label,
		referenceDate.Format("Jan 2006"),
	}, nameSeparator), nil
}

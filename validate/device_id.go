package validate

import (
	"github.com/google/uuid"

	"github.com/MrEthical07/goCred/fault"
)

// DeviceIDClaim is the claim name that carries the device identifier.
const DeviceIDClaim = "deviceId"

// canonicalUUIDLength is the length of the hyphenated 8-4-4-4-12 form. uuid.Parse also
// accepts urn, braced, and unhyphenated forms, which are not valid claim values.
const canonicalUUIDLength = 36

// DeviceIDFromClaims returns the deviceId claim when it is a syntactically valid UUID of
// any version.
func DeviceIDFromClaims(claims map[string]any) (string, error) {
	const op = "validate.DeviceIDFromClaims"
	if claims == nil {
		return "", fault.New(fault.InvalidInput, op, nil)
	}
	raw, ok := claims[DeviceIDClaim].(string)
	if !ok || !isCanonicalUUID(raw) {
		return "", fault.New(fault.MissingOrInvalidDeviceID, op, nil)
	}
	return raw, nil
}

// DeviceID checks that s is a UUID in the hyphenated 8-4-4-4-12 form.
func DeviceID(s string, opts ...Option) (bool, error) {
	return check("validate.DeviceID", s, isCanonicalUUID, opts)
}

func isCanonicalUUID(s string) bool {
	if len(s) != canonicalUUIDLength {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

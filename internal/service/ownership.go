package service

// AuthorizeMutation decides whether the requester may mutate a resource
// owned by ownerID. Ownership is the sole authorization axis: a strict
// equality check on the two opaque identifiers, with no partial matches
// and no admin override. Callers must report a denial as "not found" so a
// non-owner cannot tell a foreign resource from a missing one.
func AuthorizeMutation(ownerID, requesterID string) bool {
	if ownerID == "" || requesterID == "" {
		return false
	}
	return ownerID == requesterID
}

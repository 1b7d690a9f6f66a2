// Package party resolves person IDs to political parties.
//
// The Directory is filled from a CSV feed with person_id and party_name
// columns, usually in the background while the corpus loads. Lookups never
// fail: IDs that are not (yet) known resolve to core.UnknownParty.
package party

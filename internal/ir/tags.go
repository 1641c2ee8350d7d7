package ir

import "slices"

// Type is a role tag. Tags are IRIs from a fixed vocabulary and double as the
// discriminator for executor dispatch and polymorphic decoding.
type Type string

// Namespace roots of the engine vocabulary.
const (
	NS    = "https://w3id.org/schemagraph/"
	NSPsm = NS + "psm/"
	NSPim = NS + "pim/"
	NSOp  = NS + "operation/"
)

// Abstract facet tags. Several kinds share each of these so that generic
// executors can read and write the facet without knowing the concrete kind.
const (
	TagHumanLabeled     Type = NS + "HumanLabeled"
	TagTechnicalLabeled Type = NS + "TechnicalLabeled"
	TagInterpreted      Type = NS + "Interpreted"
	TagPartOwner        Type = NS + "PartOwner"
	TagOperation        Type = NS + "Operation"
)

// Structural (PSM) kinds.
const (
	TagPsmSchema         Type = NSPsm + "Schema"
	TagPsmClass          Type = NSPsm + "Class"
	TagPsmAttribute      Type = NSPsm + "Attribute"
	TagPsmAssociationEnd Type = NSPsm + "AssociationEnd"
	TagPsmClassReference Type = NSPsm + "ClassReference"
	TagPsmOr             Type = NSPsm + "Or"
	TagPsmInclude        Type = NSPsm + "Include"
	TagPsmContainer      Type = NSPsm + "Container"
	TagPsmExternalRoot   Type = NSPsm + "ExternalRoot"
)

// Conceptual (PIM) kinds.
const (
	TagPimSchema         Type = NSPim + "Schema"
	TagPimClass          Type = NSPim + "Class"
	TagPimAttribute      Type = NSPim + "Attribute"
	TagPimAssociation    Type = NSPim + "Association"
	TagPimAssociationEnd Type = NSPim + "AssociationEnd"
)

// Has reports whether tags contains t.
func Has(tags []Type, t Type) bool {
	return slices.Contains(tags, t)
}

// Is reports whether r carries tag t. A nil resource carries no tags.
func Is(r Resource, t Type) bool {
	if r == nil {
		return false
	}
	return Has(r.Types(), t)
}

// IsAny reports whether r carries at least one of the given tags.
func IsAny(r Resource, tags ...Type) bool {
	for _, t := range tags {
		if Is(r, t) {
			return true
		}
	}
	return false
}

// LocalName returns the part of a tag after the last '/' or '#'.
// The store uses it as the resource-kind segment of allocated IRIs.
func LocalName(t Type) string {
	s := string(t)
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' || s[i] == '#' {
			return s[i+1:]
		}
	}
	return s
}

package engine

import "github.com/roach88/schemagraph/internal/ir"

// Default returns a registry holding every built-in executor.
func Default() *Registry {
	r := NewRegistry()

	r.MustRegister(ir.OpCreatePsmSchema, Typed(createPsmSchema))
	r.MustRegister(ir.OpSetPsmSchemaRoots, Typed(setPsmSchemaRoots))
	r.MustRegister(ir.OpCreatePsmClass, Typed(createPsmClass))
	r.MustRegister(ir.OpCreatePsmAttribute, Typed(createPsmAttribute))
	r.MustRegister(ir.OpCreatePsmAssociationEnd, Typed(createPsmAssociationEnd))
	r.MustRegister(ir.OpCreatePsmClassReference, Typed(createPsmClassReference))
	r.MustRegister(ir.OpCreatePsmOr, Typed(createPsmOr))
	r.MustRegister(ir.OpSetPsmOrChoices, Typed(setPsmOrChoices))
	r.MustRegister(ir.OpCreatePsmInclude, Typed(createPsmInclude))
	r.MustRegister(ir.OpCreatePsmContainer, Typed(createPsmContainer))
	r.MustRegister(ir.OpCreatePsmExternalRoot, Typed(createPsmExternalRoot))
	r.MustRegister(ir.OpSetPsmClassExtends, Typed(setPsmClassExtends))
	r.MustRegister(ir.OpSetPsmPart, Typed(setPsmPart))
	r.MustRegister(ir.OpSetPsmDatatype, Typed(setPsmDatatype))
	r.MustRegister(ir.OpReplacePsmParts, Typed(replacePsmParts))
	r.MustRegister(ir.OpDeletePsmAttribute, Typed(deletePsmAttribute))
	r.MustRegister(ir.OpDeletePsmAssociationEnd, Typed(deletePsmAssociationEnd))
	r.MustRegister(ir.OpDeletePsmInclude, Typed(deletePsmInclude))
	r.MustRegister(ir.OpDeletePsmContainer, Typed(deletePsmContainer))
	r.MustRegister(ir.OpDeletePsmClass, Typed(deletePsmClass))
	r.MustRegister(ir.OpDeletePsmClassReference, Typed(deletePsmClassReference))
	r.MustRegister(ir.OpDeletePsmOr, Typed(deletePsmOr))
	r.MustRegister(ir.OpDeletePsmExternalRoot, Typed(deletePsmExternalRoot))

	r.MustRegister(ir.OpSetHumanLabel, Typed(setHumanLabel))
	r.MustRegister(ir.OpSetTechnicalLabel, Typed(setTechnicalLabel))
	r.MustRegister(ir.OpSetInterpretation, Typed(setInterpretation))

	r.MustRegister(ir.OpCreatePimSchema, Typed(createPimSchema))
	r.MustRegister(ir.OpCreatePimClass, Typed(createPimClass))
	r.MustRegister(ir.OpCreatePimAttribute, Typed(createPimAttribute))
	r.MustRegister(ir.OpCreatePimAssociation, Typed(createPimAssociation))
	r.MustRegister(ir.OpSetPimClassExtends, Typed(setPimClassExtends))
	r.MustRegister(ir.OpSetPimCardinality, Typed(setPimCardinality))
	r.MustRegister(ir.OpDeletePimAttribute, Typed(deletePimAttribute))
	r.MustRegister(ir.OpDeletePimAssociation, Typed(deletePimAssociation))
	r.MustRegister(ir.OpDeletePimClass, Typed(deletePimClass))

	r.MustRegister(ir.OpImportResources, Typed(importResources))
	return r
}

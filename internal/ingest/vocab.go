package ingest

import "github.com/roach88/schemagraph/internal/ir"

// Predicates of the engine vocabulary. Resource kinds are typed with their
// ir tags, e.g. "<x> rdf:type <https://w3id.org/schemagraph/psm/Class>".
const (
	PredParts            = ir.NS + "parts"
	PredRoots            = ir.NS + "roots"
	PredExtends          = ir.NS + "extends"
	PredInterpretation   = ir.NS + "interpretation"
	PredHumanLabel       = ir.NS + "humanLabel"
	PredHumanDescription = ir.NS + "humanDescription"
	PredTechnicalLabel   = ir.NS + "technicalLabel"
	PredDatatype         = ir.NS + "datatype"
	PredPart             = ir.NS + "part"
	PredSpecification    = ir.NS + "specification"
	PredChoices          = ir.NS + "choices"
	PredIncludesClass    = ir.NS + "includesClass"
	PredContainerType    = ir.NS + "containerType"
	PredExternalTypes    = ir.NS + "externalTypes"
	PredOwnerClass       = ir.NS + "ownerClass"
	PredEnds             = ir.NS + "ends"
	PredCardinalityMin   = ir.NS + "cardinalityMin"
	PredCardinalityMax   = ir.NS + "cardinalityMax"
	PredIsCodelist       = ir.NS + "isCodelist"
	PredIsOriented       = ir.NS + "isOriented"
)

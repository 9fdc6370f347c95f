package services

// UnitOptions is the list of units offered by the material form.
var UnitOptions = []Unit{UnitPieces, UnitFeet, UnitMeters, UnitBox, UnitRoll}

// CableStandardOther lets the user type a standard that is not in the list.
const CableStandardOther = "Other"

// CableStandardOptions lists the cable manufacturers/standards offered for
// cable materials.
var CableStandardOptions = []string{
	"Nexans",
	"RR",
	"Reroy",
	"CABSTAR",
	"TROPICAL CABLES",
	CableStandardOther,
}

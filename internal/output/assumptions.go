package output

// DefaultAssumptions lists the modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Registration tax (TMC): Wallonia / Brussels power brackets in kW, age degressivity to 10% at 15 years",
	"Vehicles older than 15 years pay the 61.50 EUR forfait as their whole one-time tax",
	"Eco-malus: NEDC CO2 bands, waived for collector vehicles (30 years or more)",
	"Annual circulation tax: fiscal horsepower bands, 150 EUR per CV above 20 CV",
	"Flanders: not computed; consult the Flemish tax administration",
	"Amounts are not indexed",
}

// internal/normalize/mass.go
package normalize

import "fmt"

// Mass modes.
const (
	MassAverage      = "average"
	MassMonoisotopic = "monoisotopic"
)

// Free amino-acid weights (Da), as used by Biopython's molecular_weight.
var averageWeights = map[byte]float64{
	'A': 89.0932, 'C': 121.1582, 'D': 133.1027, 'E': 147.1293, 'F': 165.1891,
	'G': 75.0666, 'H': 155.1546, 'I': 131.1729, 'K': 146.1876, 'L': 131.1729,
	'M': 149.2113, 'N': 132.1179, 'O': 255.3134, 'P': 115.1305, 'Q': 146.1445,
	'R': 174.201, 'S': 105.0926, 'T': 119.1192, 'U': 168.0532, 'V': 117.1463,
	'W': 204.2252, 'Y': 181.1885,
}

var monoisotopicWeights = map[byte]float64{
	'A': 89.047678, 'C': 121.019749, 'D': 133.037508, 'E': 147.053158, 'F': 165.078979,
	'G': 75.032028, 'H': 155.069477, 'I': 131.094629, 'K': 146.105528, 'L': 131.094629,
	'M': 149.051049, 'N': 132.053492, 'O': 255.158292, 'P': 115.063329, 'Q': 146.069142,
	'R': 174.111676, 'S': 105.042593, 'T': 119.058243, 'U': 168.964203, 'V': 117.078979,
	'W': 204.089878, 'Y': 181.073893,
}

const (
	waterAverage      = 18.0153
	waterMonoisotopic = 18.010565
)

// Mass returns the molecular weight of a linear peptide: the sum of free
// residue weights minus one water per peptide bond. residues must already be
// upper-case with stop symbols removed.
func Mass(residues, mode string) (float64, error) {
	table, water := averageWeights, waterAverage
	switch mode {
	case MassAverage, "":
	case MassMonoisotopic:
		table, water = monoisotopicWeights, waterMonoisotopic
	default:
		return 0, fmt.Errorf("unknown mass mode %q", mode)
	}
	if residues == "" {
		return 0, nil
	}
	var sum float64
	for i := 0; i < len(residues); i++ {
		w, ok := table[residues[i]]
		if !ok {
			return 0, fmt.Errorf("residue %q at position %d has no defined mass", residues[i], i+1)
		}
		sum += w
	}
	return sum - float64(len(residues)-1)*water, nil
}

package tribunal

import (
	"sort"
	"strings"
)

// Partition identifies one external judicial search backend
type Partition struct {
	ShortCode string `json:"short_code"`
	Alias     string `json:"alias"`
}

// byShortCode maps every tribunal short code to its backend partition
// alias. Loaded once; treated as immutable.
var byShortCode = map[string]string{
	// State courts (common justice)
	"TJAC":  "api_publica_tjac",
	"TJAL":  "api_publica_tjal",
	"TJAP":  "api_publica_tjap",
	"TJAM":  "api_publica_tjam",
	"TJBA":  "api_publica_tjba",
	"TJCE":  "api_publica_tjce",
	"TJDFT": "api_publica_tjdft",
	"TJES":  "api_publica_tjes",
	"TJGO":  "api_publica_tjgo",
	"TJMA":  "api_publica_tjma",
	"TJMT":  "api_publica_tjmt",
	"TJMS":  "api_publica_tjms",
	"TJMG":  "api_publica_tjmg",
	"TJPA":  "api_publica_tjpa",
	"TJPB":  "api_publica_tjpb",
	"TJPR":  "api_publica_tjpr",
	"TJPE":  "api_publica_tjpe",
	"TJPI":  "api_publica_tjpi",
	"TJRJ":  "api_publica_tjrj",
	"TJRN":  "api_publica_tjrn",
	"TJRS":  "api_publica_tjrs",
	"TJRO":  "api_publica_tjro",
	"TJRR":  "api_publica_tjrr",
	"TJSC":  "api_publica_tjsc",
	"TJSE":  "api_publica_tjse",
	"TJSP":  "api_publica_tjsp",
	"TJTO":  "api_publica_tjto",

	// State military courts
	"TJMMG": "api_publica_tjmmg",
	"TJMRS": "api_publica_tjmrs",
	"TJMSP": "api_publica_tjmsp",

	// Federal regional courts
	"TRF1": "api_publica_trf1",
	"TRF2": "api_publica_trf2",
	"TRF3": "api_publica_trf3",
	"TRF4": "api_publica_trf4",
	"TRF5": "api_publica_trf5",
	"TRF6": "api_publica_trf6",

	// Labor courts
	"TRT1":  "api_publica_trt1",
	"TRT2":  "api_publica_trt2",
	"TRT3":  "api_publica_trt3",
	"TRT4":  "api_publica_trt4",
	"TRT5":  "api_publica_trt5",
	"TRT6":  "api_publica_trt6",
	"TRT7":  "api_publica_trt7",
	"TRT8":  "api_publica_trt8",
	"TRT9":  "api_publica_trt9",
	"TRT10": "api_publica_trt10",
	"TRT11": "api_publica_trt11",
	"TRT12": "api_publica_trt12",
	"TRT13": "api_publica_trt13",
	"TRT14": "api_publica_trt14",
	"TRT15": "api_publica_trt15",
	"TRT16": "api_publica_trt16",
	"TRT17": "api_publica_trt17",
	"TRT18": "api_publica_trt18",
	"TRT19": "api_publica_trt19",
	"TRT20": "api_publica_trt20",
	"TRT21": "api_publica_trt21",
	"TRT22": "api_publica_trt22",
	"TRT23": "api_publica_trt23",
	"TRT24": "api_publica_trt24",

	// Electoral courts
	"TRE-AC": "api_publica_tre-ac",
	"TRE-AL": "api_publica_tre-al",
	"TRE-AP": "api_publica_tre-ap",
	"TRE-AM": "api_publica_tre-am",
	"TRE-BA": "api_publica_tre-ba",
	"TRE-CE": "api_publica_tre-ce",
	"TRE-DF": "api_publica_tre-dft",
	"TRE-ES": "api_publica_tre-es",
	"TRE-GO": "api_publica_tre-go",
	"TRE-MA": "api_publica_tre-ma",
	"TRE-MT": "api_publica_tre-mt",
	"TRE-MS": "api_publica_tre-ms",
	"TRE-MG": "api_publica_tre-mg",
	"TRE-PA": "api_publica_tre-pa",
	"TRE-PB": "api_publica_tre-pb",
	"TRE-PR": "api_publica_tre-pr",
	"TRE-PE": "api_publica_tre-pe",
	"TRE-PI": "api_publica_tre-pi",
	"TRE-RJ": "api_publica_tre-rj",
	"TRE-RN": "api_publica_tre-rn",
	"TRE-RS": "api_publica_tre-rs",
	"TRE-RO": "api_publica_tre-ro",
	"TRE-RR": "api_publica_tre-rr",
	"TRE-SC": "api_publica_tre-sc",
	"TRE-SE": "api_publica_tre-se",
	"TRE-SP": "api_publica_tre-sp",
	"TRE-TO": "api_publica_tre-to",

	// Superior courts
	"TST": "api_publica_tst",
	"TSE": "api_publica_tse",
	"STJ": "api_publica_stj",
	"STM": "api_publica_stm",
}

// stateBranchCodes maps the 2-digit court-branch code embedded in
// common-justice case identifiers to the tribunal short code.
var stateBranchCodes = map[string]string{
	"01": "TJAC",
	"02": "TJAL",
	"03": "TJAP",
	"04": "TJAM",
	"05": "TJBA",
	"06": "TJCE",
	"07": "TJDFT",
	"08": "TJES",
	"09": "TJGO",
	"10": "TJMA",
	"11": "TJMT",
	"12": "TJMS",
	"13": "TJMG",
	"14": "TJPA",
	"15": "TJPB",
	"16": "TJPR",
	"17": "TJPE",
	"18": "TJPI",
	"19": "TJRJ",
	"20": "TJRN",
	"21": "TJRS",
	"22": "TJRO",
	"23": "TJRR",
	"24": "TJSC",
	"25": "TJSE",
	"26": "TJSP",
	"27": "TJTO",
}

// Lookup resolves a short code or embedded 2-digit branch code to a
// backend partition.
func Lookup(code string) (Partition, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Partition{}, false
	}

	if short, ok := stateBranchCodes[code]; ok {
		code = short
	}

	alias, ok := byShortCode[code]
	if !ok {
		return Partition{}, false
	}
	return Partition{ShortCode: code, Alias: alias}, true
}

// Resolve selects the backend partition for a case identifier. A
// resolvable hint wins; otherwise the branch code embedded in the
// identifier decides; otherwise the configured default partition is
// used. It never fails.
func Resolve(identifier, hint, defaultCode string) Partition {
	if hint != "" {
		if p, ok := Lookup(hint); ok {
			return p
		}
	}

	if code, ok := ParseBranchCode(identifier); ok {
		if p, ok := Lookup(code); ok {
			return p
		}
	}

	if p, ok := Lookup(defaultCode); ok {
		return p
	}

	// Hardwired last resort: the largest state court partition.
	return Partition{ShortCode: "TJSP", Alias: "api_publica_tjsp"}
}

// All returns every registry entry sorted by short code.
func All() []Partition {
	out := make([]Partition, 0, len(byShortCode))
	for code, alias := range byShortCode {
		out = append(out, Partition{ShortCode: code, Alias: alias})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ShortCode < out[j].ShortCode })
	return out
}

package models

import (
	"fmt"

	"ghmm_go/alphabet"
	"ghmm_go/emission"
	"ghmm_go/ghmm"
	"ghmm_go/length"
	"ghmm_go/mathx"
)

// signalPeptideEmissionText holds the amino acid composition tables
// transcribed from signalp_model.cc's literal EmissionDistributionParser
// strings, keyed by the name each backs. a_emit's source line carried a
// corrupted extra field ("68:0.629") and a stray second frequency on
// F ("0.040006:0.353"); both are cleaned up here to the single E/F
// frequencies the surrounding values make unambiguous.
var signalPeptideEmissionText = map[string]string{
	"a": `A:0.0669576 C:0.0289179 D:0.0330147 E:0.0629068 F:0.0400063
	      G:0.0611961 H:0.022283  I:0.0269273 K:0.0721042 L:0.101807
	      M:0.0147688 N:0.0299838 P:0.0741557 Q:0.0418068 R:0.119932
	      S:0.0804025 T:0.0474921 V:0.0344917 W:0.0186883 Y:0.0221576`,
	"h1": `A:0.118119 C:0.03861 D:0.000595187 E:0.00177443 F:0.0767409
	       G:0.0306102 H:0.00313159 I:0.0665444 K:0.00070983 L:0.395109
	       M:0.0156903 N:0.00237627 P:0.0130463 Q:0.00613188 R:0.00187656
	       S:0.0526021 T:0.0373178 V:0.113108 W:0.0174949 Y:0.00841131`,
	"cloop": `A:0.147336 C:0.0414663 D:0.0179464 E:0.0251696 F:0.0542468
	          G:0.0665154 H:0.0304854 I:0.0162634 K:0.00849114 L:0.193351
	          M:0.0415414 N:0.0210277 P:0.0387329 Q:0.0384388 R:0.0213533
	          S:0.118563 T:0.0556446 V:0.0349755 W:0.0172798 Y:0.011172`,
	"c6": `A:0.153224 C:0.0246704 D:0.0116804 E:0.0201758 F:0.0563868
	       G:0.04778 H:0.0171105 I:0.0672533 K:0.00937792 L:0.112884
	       M:0.0147248 N:0.0121292 P:0.162384 Q:0.0300841 R:0.0137437
	       S:0.0833226 T:0.0327591 V:0.0940115 W:0.0265675 Y:0.00973044`,
	"c5": `A:0.142938 C:0.0248836 D:0.0254452 E:0.0290891 F:0.0117752
	       G:0.119398 H:0.0334432 I:0.0136058 K:0.0243885 L:0.0643162
	       M:0.00506387 N:0.0335328 P:0.101393 Q:0.0582125 R:0.0347008
	       S:0.124018 T:0.0840858 V:0.0478986 W:0.0151097 Y:0.006702`,
	"c4": `A:0.0927543 C:0.0364718 D:0.0134743 E:0.0330211 F:0.0257115
	       G:0.137211 H:0.0146256 I:0.0396322 K:0.0200229 L:0.12227
	       M:0.0124529 N:0.01005 P:0.0869224 Q:0.0445039 R:0.0373149
	       S:0.0985152 T:0.070977 V:0.0759606 W:0.0129497 Y:0.015159`,
	"c3": `A:0.270401 C:0.079943 D:0.00424344 E:0.00106659 F:0.00318821
	       G:0.0769233 H:0.00214294 I:0.0343464 K:0.00429208 L:0.0592223
	       M:0.00526526 N:0.00427151 P:0.0031593 Q:0.00316105 R:0.00850882
	       S:0.129776 T:0.108417 V:0.199535 W:0.00213739`,
	"c2": `A:0.0774475 C:0.0232888 D:0.0383256 E:0.0701399 F:0.0318771
	       G:0.0365087 H:0.0502663 I:0.0191553 K:0.0137405 L:0.170265
	       M:0.0191325 N:0.0353537 P:0.0116314 Q:0.0801956 R:0.0561667
	       S:0.11924 T:0.0505315 V:0.0359988 W:0.030043 Y:0.0306924`,
	"c1": `A:0.508548 C:0.0520235 G:0.191738 L:0.0236176 P:0.0297181
	       Q:0.0161297 S:0.132299 T:0.0459261`,
	"cut": `A:0.14242   C:0.0202267 D:0.0728223 E:0.0848579 F:0.0339855
	        G:0.0545347 H:0.0234416 I:0.0306897 K:0.0472419 L:0.0771698
	        M:0.0128499 N:0.0274769 P:0.00634449 Q:0.111559 R:0.0426487
	        S:0.0832117 T:0.0493584 V:0.0492212 W:0.00964942 Y:0.0202909`,
}

// h1LengthFreqs is the explicit 13-bin [6,19) helix-length histogram
// from signalp_model.cc's h1_dpdf literal.
var h1LengthFreqs = []float64{
	6.54977e-16, 3.7347e-12, 1.71429e-05, 0.00274341, 0.000951411,
	0.00769368, 0.231647, 0.220435, 0.155337, 0.157697, 0.222918,
	0.000560533, 1.92736e-08,
}

func parseEmission(a *alphabet.Alphabet, key string) (*mathx.DPDF, error) {
	text, ok := signalPeptideEmissionText[key]
	if !ok {
		return nil, fmt.Errorf("models: no emission text registered for %q", key)
	}
	d, err := alphabet.BuildDPDFFromText(a, text)
	if err != nil {
		return nil, fmt.Errorf("models: parsing %q emission: %w", key, err)
	}
	return d, nil
}

// addSignalPeptideStates wires the 14-state anchor/helix/cleavage-site
// architecture of signalp_model.cc's makeSignalPModel into b, returning
// the entry and exit state names ("a1" and "cut") so a caller (whether
// NewSignalPeptideModel or the PEXEL model's "a" pattern) can connect
// them to whatever sits on either side.
func addSignalPeptideStates(b *ghmm.ModelBuilder, a *alphabet.Alphabet) (first, last string, err error) {
	emit := map[string]emission.Emission{}
	for _, key := range []string{"a", "h1", "cloop", "c6", "c5", "c4", "c3", "c2", "c1", "cut"} {
		d, err := parseEmission(a, key)
		if err != nil {
			return "", "", err
		}
		emit[key] = emission.NewStateless(d)
	}

	h1Dpdf := mathx.NewDPDF()
	if !h1Dpdf.SetDistrib(6, 19, h1LengthFreqs, true) {
		return "", "", fmt.Errorf("models: building h1 length distribution failed")
	}

	b.AddState("a1", ghmm.NewState(length.NewFixed(3), emit["a"]))
	b.AddState("a2", ghmm.NewState(length.NewGeometric(15.61295), emit["a"]))
	b.AddState("h1", ghmm.NewState(length.NewDiscrete(h1Dpdf), emit["h1"]))
	b.AddState("cloop", ghmm.NewState(length.NewGeometric(4.155), emit["cloop"]))
	b.AddState("c9", ghmm.NewState(length.NewFixed(1), emit["cloop"]))
	b.AddState("c8", ghmm.NewState(length.NewFixed(1), emit["cloop"]))
	b.AddState("c7", ghmm.NewState(length.NewFixed(1), emit["cloop"]))
	b.AddState("c6", ghmm.NewState(length.NewFixed(1), emit["c6"]))
	b.AddState("c5", ghmm.NewState(length.NewFixed(1), emit["c5"]))
	b.AddState("c4", ghmm.NewState(length.NewFixed(1), emit["c4"]))
	b.AddState("c3", ghmm.NewState(length.NewFixed(1), emit["c3"]))
	b.AddState("c2", ghmm.NewState(length.NewFixed(1), emit["c2"]))
	b.AddState("c1", ghmm.NewState(length.NewFixed(1), emit["c1"]))
	b.AddState("cut", ghmm.NewState(length.NewFixed(1), emit["cut"]))

	b.AddTransition("a1", "a2", 0.0217286)
	b.AddTransition("a2", "h1", 0.0217286)
	b.AddTransition("h1", "cloop", 0.0217286)
	b.AddTransition("h1", "c9", 0.057086)
	b.AddTransition("h1", "c8", 0.151762)
	b.AddTransition("h1", "c7", 0.0578779)
	b.AddTransition("h1", "c6", 0.0568417)
	b.AddTransition("h1", "c5", 0.573097)
	b.AddTransition("h1", "c4", 0.0416052)
	b.AddTransition("h1", "c3", 0.0400018)

	b.AddTransition("cloop", "c9", 1)
	b.AddTransition("c9", "c8", 1)
	b.AddTransition("c8", "c7", 1)
	b.AddTransition("c7", "c6", 1)
	b.AddTransition("c6", "c5", 1)
	b.AddTransition("c5", "c4", 1)
	b.AddTransition("c4", "c3", 1)
	b.AddTransition("c3", "c2", 1)
	b.AddTransition("c2", "c1", 1)
	b.AddTransition("c1", "cut", 1)

	return "a1", "cut", nil
}

// NewSignalPeptideModel compiles the signal-peptide cleavage-site model
// on its own: BEGIN feeds directly into the anchor state and the
// cleavage site feeds directly into END.
func NewSignalPeptideModel() (*ghmm.Model, *alphabet.Alphabet, error) {
	a := AminoAcidAlphabet()
	b := ghmm.NewModelBuilder()

	first, last, err := addSignalPeptideStates(b, a)
	if err != nil {
		return nil, nil, err
	}
	b.AddTransition(ghmm.BeginName, first, 1)
	b.AddTransition(last, ghmm.EndName, 1)

	m, err := b.Compile()
	if err != nil {
		return nil, nil, fmt.Errorf("models: compiling signal peptide model: %w", err)
	}
	return m, a, nil
}

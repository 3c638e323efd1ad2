package sgp4

import (
	"testing"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

type vector struct {
	tsince   float64
	pos, vel [3]float64
}

func checkVectors(t *testing.T, sat *Satellite, vectors []vector) {
	t.Helper()
	for _, v := range vectors {
		st, err := sat.Propagate(v.tsince)
		if err != nil {
			t.Fatalf("%s at %.0f min: %s", sat.Name(), v.tsince, err)
		}
		if !st.KeplerConverged {
			t.Fatalf("%s at %.0f min: Kepler did not converge", sat.Name(), v.tsince)
		}
		if !within(st.Pos, v.pos, 1e-4) {
			t.Fatalf("%s at %.0f min: position %v instead of %v", sat.Name(), v.tsince, st.Pos, v.pos)
		}
		if !within(st.Vel, v.vel, 1e-7) {
			t.Fatalf("%s at %.0f min: velocity %v instead of %v", sat.Name(), v.tsince, st.Vel, v.vel)
		}
	}
}

func within(a, b [3]float64, tol float64) bool {
	for i := range a {
		if !scalar.EqualWithinAbs(a[i], b[i], tol) {
			return false
		}
	}
	return true
}

func mustParse(t *testing.T, name, l1, l2 string) *Satellite {
	t.Helper()
	sat, err := Parse(name, l1, l2)
	if err != nil {
		t.Fatal(err)
	}
	return sat
}

func TestNearEarth(t *testing.T) {
	sat := mustParse(t, "88888", nearEarthL1, nearEarthL2)
	if sat.DeepSpace() || sat.Resonance() != ResonanceNone {
		t.Fatalf("%s", sat)
	}
	checkVectors(t, sat, []vector{
		{0, [3]float64{2328.96975262, -5995.22051338, 1719.97297192}, [3]float64{2.912073281, -0.983417956, -7.090816210}},
		{360, [3]float64{2456.10706533, -6071.93855503, 1222.89768554}, [3]float64{2.679390040, -0.448290811, -7.228792155}},
		{720, [3]float64{2567.56229695, -6112.50383922, 713.96374435}, [3]float64{2.440245751, 0.098109002, -7.319959258}},
		{1440, [3]float64{2742.55398832, -6079.67009123, -326.39012649}, [3]float64{1.948497651, 1.211072678, -7.356193131}},
		{-1440, [3]float64{1672.29791687, -5362.20766703, 3531.99394919}, [3]float64{3.749271129, -2.951433832, -6.109998617}},
	})
}

func TestDeepSpace(t *testing.T) {
	sat := mustParse(t, "11801", deepL1, deepL2)
	if !sat.DeepSpace() || sat.Resonance() != ResonanceNone || sat.Period() < deepSpacePeriod {
		t.Fatalf("%s", sat)
	}
	checkVectors(t, sat, []vector{
		{0, [3]float64{7473.37102491, 428.94748312, 5828.74846783}, [3]float64{5.107155391, 6.444680305, -0.186133297}},
		{360, [3]float64{-3305.22148694, 32410.84323331, -24697.16974954}, [3]float64{-1.301137319, -1.151315600, -0.283335823}},
		{720, [3]float64{14271.29083858, 24110.44309010, -4725.76320143}, [3]float64{-0.320504528, 2.679841539, -2.084054355}},
		{1440, [3]float64{9787.87836255, 33753.32249667, -15030.79874626}, [3]float64{-1.094251553, 0.923589906, -1.522311008}},
		{-1440, [3]float64{-10215.43142289, 22719.80324920, -23698.96517052}, [3]float64{-0.979284541, -2.322516542, 0.758454145}},
	})
}

func TestSynchronousResonance(t *testing.T) {
	sat := mustParse(t, "GEO", geoL1, geoL2)
	if sat.Resonance() != ResonanceSynchronous {
		t.Fatalf("%s", sat)
	}
	checkVectors(t, sat, []vector{
		{0, [3]float64{-7343.59176666, 41521.79619406, 12.62747012}, [3]float64{-3.027708779, -0.534872130, 0.001167692}},
		{360, [3]float64{-41500.24324584, -7502.57115039, 16.31050597}, [3]float64{0.546989492, -3.025040879, -0.000929816}},
		{720, [3]float64{7664.44522460, -41460.66803629, -12.88988851}, [3]float64{3.023473052, 0.559533766, -0.001209140}},
		{1440, [3]float64{-8050.94182862, 41390.52042242, 13.22718811}, [3]float64{-3.018135202, -0.586450826, 0.001244622}},
		{-1440, [3]float64{-6634.58615905, 41640.90722677, 12.16622775}, [3]float64{-3.036395412, -0.483172740, 0.001065728}},
	})
}

func TestHalfDayResonance(t *testing.T) {
	sat := mustParse(t, "Molniya", molniyaL1, molniyaL2)
	if sat.Resonance() != ResonanceHalfDay {
		t.Fatalf("%s", sat)
	}
	checkVectors(t, sat, []vector{
		{0, [3]float64{-5156.87816713, 13098.60703417, 5448.05087062}, [3]float64{-2.957106917, 1.272085736, 5.238739324}},
		{360, [3]float64{-17799.49541119, -14879.89856207, 39141.88403100}, [3]float64{0.569781563, -1.331227014, -0.643197603}},
		{720, [3]float64{-5519.06029310, 13257.34004021, 6124.22711828}, [3]float64{-2.879221340, 1.086837446, 5.156198769}},
		{1440, [3]float64{-5871.74338679, 13393.81154274, 6790.81046637}, [3]float64{-2.803962315, 0.917045063, 5.072560369}},
		{-1440, [3]float64{-4402.60563406, 12705.93002642, 4067.95443114}, [3]float64{-3.120369494, 1.696712539, 5.396670143}},
	})
}

func TestPropagateIsStateless(t *testing.T) {
	sat := mustParse(t, "Molniya", molniyaL1, molniyaL2)
	first, err := sat.Propagate(2000)
	if err != nil {
		t.Fatal(err)
	}
	for _, tsince := range []float64{-1000, 10, 1500, 1999} {
		if _, err := sat.Propagate(tsince); err != nil {
			t.Fatal(err)
		}
	}
	again, _ := sat.Propagate(2000)
	if first != again {
		t.Fatalf("%v then %v", first, again)
	}
	viaJD, _ := sat.PropagateJD(sat.EpochJD() + 2000.0/1440)
	if !within(viaJD.Pos, first.Pos, 1e-2) {
		t.Fatalf("%v and %v", viaJD.Pos, first.Pos)
	}
}

func TestPropagateFailures(t *testing.T) {
	decay := mustParse(t, "decay", decayL1, decayL2)
	for _, tsince := range []float64{0, 5} {
		if _, err := decay.Propagate(tsince); err != nil {
			t.Fatalf("%.0f min: %s", tsince, err)
		}
	}
	st, err := decay.Propagate(10)
	if err != ErrDecayed {
		t.Fatalf("expected a decay, got %v", err)
	}
	if r := floats.Norm(st.Pos[:], 2); !scalar.EqualWithinAbs(r, 6362.66, 0.01) {
		t.Fatalf("the position is still computed: %f km", r)
	}

	drag := mustParse(t, "drag", highDragL1, highDragL2)
	for _, tsince := range []float64{0, 720} {
		if _, err := drag.Propagate(tsince); err != nil {
			t.Fatalf("%.0f min: %s", tsince, err)
		}
	}
	for _, tsince := range []float64{1070, 1440} {
		if _, err := drag.Propagate(tsince); err != ErrEccentricity {
			t.Fatalf("%.0f min: %v", tsince, err)
		}
	}
}

func TestNewRejects(t *testing.T) {
	tle, err := ParseTLE("88888", nearEarthL1, nearEarthL2)
	if err != nil {
		t.Fatal(err)
	}
	bad := *tle
	bad.MeanMotion = 0
	if _, err := New(&bad); errors.Cause(err) != ErrMeanMotion {
		t.Fatalf("n=0: %v", err)
	}
	bad = *tle
	bad.Eccentricity = 1
	if _, err := New(&bad); errors.Cause(err) != ErrEccentricity {
		t.Fatalf("e=1: %v", err)
	}
	if _, err := New(nil); errors.Cause(err) != ErrFormat {
		t.Fatalf("nil: %v", err)
	}
}

func TestErrorString(t *testing.T) {
	for code, want := range map[int]string{
		0: "Success",
		1: "Eccentricity >= 1.0 or < -0.001",
		2: "Mean motion less than 0.0",
		3: "Eccentricity >= 1.0 or < -0.001",
		4: "Semi-latus rectum < 0.0",
		5: "Unknown error",
		6: "Satellite has decayed",
		7: "Unknown error",
	} {
		if got := ErrorString(code); got != want {
			t.Fatalf("%d: %q", code, got)
		}
	}
	if ErrDecayed.Error() != "Satellite has decayed" {
		t.Fatal(ErrDecayed.Error())
	}
	if ResonanceHalfDay.String() != "12h" || Resonance(9).String() != "unknown" {
		t.Fatal("resonance names")
	}
}

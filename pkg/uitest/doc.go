// Package uitest provides testing utilities for Bubble Tea components.
//
// [NewTestModel] accepts any model satisfying [BubbleModel], including models
// whose Update method returns the concrete type instead of [tea.Model]:
//
//	func TestSpinner(t *testing.T) {
//	    t.Parallel()
//
//	    tm := uitest.NewTestModel(t, progress.New(ctx, "Deploying", action), uitest.Compact)
//	    m := uitest.FinalModel(t, tm, time.Second)
//	}
package uitest

// Package install copies registry components into a project.
//
// Installing a component is a depth-first walk over its requires list:
// every required component is installed before the component's own hooks,
// its source file and finally its npm dependencies. Shared requirements are
// installed each time they are reached, so the Guard prompts again for files
// written earlier in the same run. A requires cycle is rejected before
// anything is written.
//
// Fetch failures and declined overwrites affect only the file concerned.
// Nothing is rolled back: hooks written before a component's own fetch fails
// stay on disk.
//
// # Usage
//
//	inst := install.New(install.Options{
//	    Registry:  reg,
//	    Layout:    cfg.Layout(),
//	    Fetcher:   fetcher,
//	    Confirmer: prompt.Auto(),
//	    Deps:      install.NewPackageManager("npm", cfg.Root()),
//	})
//	for _, res := range inst.InstallAll(ctx, []string{"Card", "Dialog"}) {
//	    if res.Err != nil {
//	        // not found or cyclic; siblings still ran
//	    }
//	}
package install

// Package appbundle packages the NookPlayer Swift sources into a macOS
// application bundle.
//
// A build is a single linear pass: remove any previous bundle, create the
// Contents/MacOS and Contents/Resources skeleton, compile the Swift sources
// into Contents/MacOS/<name>, write Contents/Info.plist, then copy the
// optional icon set, music folder and app icon into Contents/Resources.
//
// # Basic Usage
//
//	res, err := appbundle.Build(ctx, appbundle.DefaultConfig().WithRoot(dir))
//	if err != nil {
//	    var cerr *appbundle.CompileError
//	    if errors.As(err, &cerr) {
//	        fmt.Println(cerr.Stderr)
//	        os.Exit(1)
//	    }
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Path)
//
// # Resulting Layout
//
//	NookPlayer.app/
//	  Contents/
//	    Info.plist
//	    MacOS/NookPlayer
//	    Resources/
//	      Assets.xcassets/   (if NookPlayer/Assets.xcassets exists)
//	      Musics/            (if Resources/Musics exists)
//	      AppIcon.png        (if bar.png exists)
//
// Missing optional assets are skipped silently. A failed build leaves
// whatever it had already created on disk unless Config.CleanupOnFailure
// is set.
package appbundle

package ignore

import (
	"fmt"
	"sync"
	"testing"
)

type matchCase struct {
	path        string
	isDirectory bool
	ignored     bool
}

func assertMatches(t *testing.T, ruleSet *RuleSet, cases []matchCase) {
	t.Helper()
	for _, testCase := range cases {
		candidate := PathCandidate{Path: testCase.path, IsDirectory: testCase.isDirectory}
		if got := ruleSet.IsIgnored(candidate); got != testCase.ignored {
			t.Errorf("IsIgnored(%q, dir=%v) = %v, want %v", testCase.path, testCase.isDirectory, got, testCase.ignored)
		}
	}
}

func TestLastMatchingRuleWins(t *testing.T) {
	t.Parallel()

	ignoreThenNegate := Compile([]string{"x", "!x"}, nil)
	assertMatches(t, ignoreThenNegate, []matchCase{{path: "x", ignored: false}})

	negateThenIgnore := Compile([]string{"!x", "x"}, nil)
	assertMatches(t, negateThenIgnore, []matchCase{{path: "x", ignored: true}})
}

func TestMatchReportsDecidingRule(t *testing.T) {
	t.Parallel()

	ruleSet := Compile([]string{"*.tmp", "!keep.tmp", "other"}, nil)

	result := ruleSet.Match(PathCandidate{Path: "keep.tmp"})
	if result.Ignored || !result.Matched || result.RuleIndex != 1 {
		t.Fatalf("unexpected result for keep.tmp: %+v", result)
	}

	result = ruleSet.Match(PathCandidate{Path: "main.go"})
	if result.Ignored || result.Matched || result.RuleIndex != -1 {
		t.Fatalf("unexpected result for unmatched path: %+v", result)
	}
}

func TestNegationResurrectsFileMatchedByBroaderRule(t *testing.T) {
	t.Parallel()

	ruleSet := CompileText("*.log\n!important.log\n")
	assertMatches(t, ruleSet, []matchCase{
		{path: "debug.log", ignored: true},
		{path: "important.log", ignored: false},
		{path: "nested/important.log", ignored: false},
	})
}

func TestDirectoryRuleCoversDescendantsButNegationStillDecidesPerPath(t *testing.T) {
	t.Parallel()

	ruleSet := Compile([]string{"build/", "!build/keep.txt"}, nil)
	assertMatches(t, ruleSet, []matchCase{
		{path: "build", isDirectory: true, ignored: true},
		{path: "build/other.txt", ignored: true},
		{path: "build/keep.txt", ignored: false},
	})
}

func TestAnchoring(t *testing.T) {
	t.Parallel()

	anchored := CompileText("/secrets.txt")
	assertMatches(t, anchored, []matchCase{
		{path: "secrets.txt", ignored: true},
		{path: "nested/secrets.txt", ignored: false},
	})

	unanchored := CompileText("secrets.txt")
	assertMatches(t, unanchored, []matchCase{
		{path: "secrets.txt", ignored: true},
		{path: "nested/secrets.txt", ignored: true},
	})

	middleSlash := CompileText("docs/internal")
	assertMatches(t, middleSlash, []matchCase{
		{path: "docs/internal", isDirectory: true, ignored: true},
		{path: "docs/internal/plan.md", ignored: true},
		{path: "site/docs/internal", isDirectory: true, ignored: false},
	})
}

func TestWildcardsDoNotCrossSeparators(t *testing.T) {
	t.Parallel()

	if !matchGlob("*.log", "app.log") {
		t.Fatalf("*.log must match app.log")
	}
	if matchSegments([]string{"*.log"}, []string{"logs", "app.log"}) {
		t.Fatalf("*.log must not match logs/app.log as a whole path")
	}
	if matchGlob("a?c", "a/c") {
		t.Fatalf("? must not match a separator")
	}

	rootOnly := CompileText("/*.log")
	assertMatches(t, rootOnly, []matchCase{
		{path: "app.log", ignored: true},
		{path: "logs/app.log", ignored: false},
	})

	anyDepth := CompileText("**/*.log")
	assertMatches(t, anyDepth, []matchCase{
		{path: "app.log", ignored: true},
		{path: "logs/app.log", ignored: true},
		{path: "a/b/c/app.log", ignored: true},
		{path: "app.txt", ignored: false},
	})

	unanchored := CompileText("*.log")
	assertMatches(t, unanchored, []matchCase{
		{path: "logs/app.log", ignored: true},
	})

	singleLevel := CompileText("src/*/gen.go")
	assertMatches(t, singleLevel, []matchCase{
		{path: "src/a/gen.go", ignored: true},
		{path: "src/a/b/gen.go", ignored: false},
	})
}

func TestDoubleStarSegments(t *testing.T) {
	t.Parallel()

	middle := CompileText("a/**/b")
	assertMatches(t, middle, []matchCase{
		{path: "a/b", ignored: true},
		{path: "a/x/b", ignored: true},
		{path: "a/x/y/b", ignored: true},
		{path: "a/x/y/c", ignored: false},
	})

	trailing := CompileText("vendor/**")
	assertMatches(t, trailing, []matchCase{
		{path: "vendor", isDirectory: true, ignored: false},
		{path: "vendor/lib.go", ignored: true},
		{path: "vendor/pkg/lib.go", ignored: true},
	})

	leading := CompileText("**/node_modules")
	assertMatches(t, leading, []matchCase{
		{path: "node_modules", isDirectory: true, ignored: true},
		{path: "web/app/node_modules", isDirectory: true, ignored: true},
		{path: "web/app/node_modules/react/index.js", ignored: true},
	})

	everything := CompileText("**")
	assertMatches(t, everything, []matchCase{
		{path: "a", ignored: true},
		{path: "a/b/c", ignored: true},
	})
}

func TestDirectoryOnlyRules(t *testing.T) {
	t.Parallel()

	ruleSet := CompileText("cache/")
	assertMatches(t, ruleSet, []matchCase{
		{path: "cache", isDirectory: true, ignored: true},
		{path: "cache", isDirectory: false, ignored: false},
		{path: "src/cache", isDirectory: true, ignored: true},
		{path: "src/cache/data.bin", ignored: true},
		{path: "src/cache.go", ignored: false},
	})
}

func TestCharacterClasses(t *testing.T) {
	t.Parallel()

	ruleSet := CompileText("file[0-9].txt\n[!a]*.md\n[]x].cfg\n")
	assertMatches(t, ruleSet, []matchCase{
		{path: "file1.txt", ignored: true},
		{path: "filex.txt", ignored: false},
		{path: "readme.md", ignored: true},
		{path: "about.md", ignored: false},
		{path: "].cfg", ignored: true},
		{path: "x.cfg", ignored: true},
		{path: "y.cfg", ignored: false},
	})
}

func TestMalformedCharacterClassIsLiteral(t *testing.T) {
	t.Parallel()

	ruleSet := CompileText("[abc\nlog[")
	assertMatches(t, ruleSet, []matchCase{
		{path: "[abc", ignored: true},
		{path: "a", ignored: false},
		{path: "log[", ignored: true},
		{path: "log", ignored: false},
	})
}

func TestEscapedLiterals(t *testing.T) {
	t.Parallel()

	ruleSet := CompileText("\\#notes\n\\!important\nstar\\*\n")
	assertMatches(t, ruleSet, []matchCase{
		{path: "#notes", ignored: true},
		{path: "!important", ignored: true},
		{path: "important", ignored: false},
		{path: "star*", ignored: true},
		{path: "starry", ignored: false},
	})
}

func TestMatchingIsCaseSensitive(t *testing.T) {
	t.Parallel()

	ruleSet := CompileText("README.md")
	assertMatches(t, ruleSet, []matchCase{
		{path: "README.md", ignored: true},
		{path: "readme.md", ignored: false},
	})
}

func TestCandidateNormalization(t *testing.T) {
	t.Parallel()

	ruleSet := CompileText("/build/")
	assertMatches(t, ruleSet, []matchCase{
		{path: "./build", isDirectory: true, ignored: true},
		{path: "build/", isDirectory: true, ignored: true},
		{path: "build//out.o", ignored: true},
		{path: "", isDirectory: true, ignored: false},
		{path: ".", isDirectory: true, ignored: false},
	})
}

func TestBuiltinsCannotBeNegatedByUserRules(t *testing.T) {
	t.Parallel()

	ruleSet := Compile([]string{"!*.pdf", "!.git/"}, []string{".git/", "*.pdf"})
	assertMatches(t, ruleSet, []matchCase{
		{path: "codebase.pdf", ignored: true},
		{path: ".git", isDirectory: true, ignored: true},
	})
}

func TestEmptyUserRulesStillApplyBuiltins(t *testing.T) {
	t.Parallel()

	ruleSet := Compile(nil, []string{".git/", "__pycache__/", "*.pyc", "*.pdf"})
	assertMatches(t, ruleSet, []matchCase{
		{path: ".git", isDirectory: true, ignored: true},
		{path: "pkg/__pycache__", isDirectory: true, ignored: true},
		{path: "pkg/mod.pyc", ignored: true},
		{path: "out.pdf", ignored: true},
		{path: "main.go", ignored: false},
	})
}

func TestIsIgnoredIsSafeForConcurrentUse(t *testing.T) {
	t.Parallel()

	ruleSet := CompileText("*.log\n!keep.log\nbuild/\n")
	var waitGroup sync.WaitGroup
	errorsChannel := make(chan error, 64)
	for worker := 0; worker < 16; worker++ {
		waitGroup.Add(1)
		go func(worker int) {
			defer waitGroup.Done()
			for iteration := 0; iteration < 200; iteration++ {
				candidatePath := fmt.Sprintf("dir%d/file%d.log", worker, iteration)
				if !ruleSet.IsIgnored(PathCandidate{Path: candidatePath}) {
					errorsChannel <- fmt.Errorf("%s should be ignored", candidatePath)
					return
				}
				if ruleSet.IsIgnored(PathCandidate{Path: "keep.log"}) {
					errorsChannel <- fmt.Errorf("keep.log should be kept")
					return
				}
			}
		}(worker)
	}
	waitGroup.Wait()
	close(errorsChannel)
	for err := range errorsChannel {
		t.Error(err)
	}
}

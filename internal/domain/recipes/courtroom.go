// Package recipes holds the patch recipes compiled into the binary.
package recipes

import (
	"sort"

	"github.com/openkraft/devkit/internal/domain"
)

// CourtroomTarget is the file the flicker fix rewrites, relative to the project root.
const CourtroomTarget = "src/pages/CourtRoom.tsx"

var builtin = map[string]func() domain.Recipe{
	domain.DefaultRecipe: CourtroomFlicker,
}

// Lookup returns the built-in recipe with the given name.
func Lookup(name string) (domain.Recipe, bool) {
	fn, ok := builtin[name]
	if !ok {
		return domain.Recipe{}, false
	}
	return fn(), true
}

// Names lists the built-in recipes in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CourtroomFlicker stops the court video grid from remounting on every
// render. The grid and track counter move out of the page component into
// memoized top-level components, the room id is pinned on mount, and the
// token fetch is skipped once a connection exists.
func CourtroomFlicker() domain.Recipe {
	return domain.Recipe{
		Name:        domain.DefaultRecipe,
		Description: "Fix CourtRoom video flicker caused by inline components remounting",
		Target:      CourtroomTarget,
		Steps: []domain.PatchStep{
			{
				Name:    "extend react import",
				Kind:    domain.StepReplace,
				Find:    reactImport,
				Replace: reactImportMemo,
			},
			{
				Name:      "add memoized video components",
				Kind:      domain.StepSplice,
				Anchor:    trackImport,
				EndAnchor: "export default function CourtRoom()",
				Block:     memoizedComponents,
				Marker:    "const CourtVideoGrid = memo(",
			},
			{
				Name:    "remove inline video components",
				Kind:    domain.StepDeletePattern,
				Pattern: `(?ms)^  const (?:CourtVideoGrid|CourtTrackCounter) = \(\{.*?^  \};\n\n?`,
			},
			{
				Name:   "stabilize room id",
				Kind:   domain.StepInsertBefore,
				Anchor: "  // Court functionality state",
				Block:  stableRoomID,
				Marker: "const roomIdRef = useRef",
			},
			{
				Name:    "guard token refetch",
				Kind:    domain.StepReplace,
				Find:    initCourtroomOpen,
				Replace: initCourtroomGuarded,
			},
			{
				Name:   "name track counter",
				Kind:   domain.StepInsertAfterLast,
				Anchor: "  return null;\n});\n",
				Block:  trackCounterName,
				Marker: "CourtTrackCounter.displayName",
			},
		},
	}
}

const (
	reactImport     = `import React, { useEffect, useState } from "react";`
	reactImportMemo = `import React, { useEffect, useState, useMemo, memo, useRef } from "react";`
	trackImport     = "import { Track } from \"livekit-client\";\n"
)

const memoizedComponents = `
// Memoized Court Video Grid - Prevents remounting and flickering
const CourtVideoGrid = memo(({ maxTiles }: { maxTiles: number }) => {
  const tracks = useTracks(
    [Track.Source.Camera, Track.Source.ScreenShare],
    { onlySubscribed: true }
  );

  const visible = useMemo(() => 
    (tracks || []).slice(0, Math.max(2, maxTiles || 2)),
    [tracks, maxTiles]
  );

  const placeholders = Math.max(2, maxTiles || 2) - visible.length;

  const getCols = () => {
    const cols = Math.max(2, maxTiles || 2);
    if (cols <= 2) return 2;
    if (cols <= 3) return 3;
    return Math.min(cols, 4);
  };

  return (
    <div
      className="w-full h-[60vh] gap-2 p-2"
      style={{
        display: 'grid',
        gridTemplateColumns: ` + "`" + `repeat(${getCols()}, minmax(0, 1fr))` + "`" + `
      }}
    >
      {visible.map((t, index) => {
        const participantSid = t.participant?.sid || ` + "`" + `participant-${index}` + "`" + `;
        const stableKey = ` + "`" + `${participantSid}-${index}` + "`" + `;
        
        return (
          <div
            key={stableKey}
            className="tc-neon-frame"
          >
            <ParticipantTile trackRef={t} />
          </div>
        );
      })}
      {Array.from({ length: placeholders }).map((_, i) => (
        <div 
          key={` + "`" + `ph-${i}` + "`" + `}
          className="tc-neon-frame flex items-center justify-center"
          style={{ pointerEvents: 'none' }}
        >
          <div className="text-gray-400 text-sm">Waiting for participant…</div>
        </div>
      ))}
    </div>
  );
});

CourtVideoGrid.displayName = 'CourtVideoGrid';

// Memoized Track Counter
const CourtTrackCounter = memo(({ onCount }: { onCount: (count: number) => void }) => {
  const tracks = useTracks(
    [Track.Source.Camera, Track.Source.ScreenShare],
    { onlySubscribed: true }
  );

  const activeCount = useMemo(() => {
    const identities = new Set(
      (tracks || []).map((t) => t.participant?.sid || t.participant?.identity)
    );
    return identities.size;
  }, [tracks]);

  useEffect(() => {
    onCount(activeCount);
  }, [activeCount, onCount]);

  return null;
});
`

const stableRoomID = `  // Stabilize room ID once at mount
  const roomIdRef = useRef<string | null>(null);
  useEffect(() => {
    if (courtId && !roomIdRef.current) {
      roomIdRef.current = courtId;
      console.log('[CourtRoom] Room ID stabilized:', courtId);
    }
  }, [courtId]);
  const roomId = roomIdRef.current || courtId;

`

const initCourtroomOpen = `  const initCourtroom = async () => {
    try {
      setLoading(true);
`

const initCourtroomGuarded = `  const initCourtroom = async () => {
    if (token && serverUrl) return;
    try {
      setLoading(true);
`

const trackCounterName = "\nCourtTrackCounter.displayName = 'CourtTrackCounter';\n"

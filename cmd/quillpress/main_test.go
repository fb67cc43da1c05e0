// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"testing"
	"time"
)

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, pages, want int
	}{
		{1, 3, 1},
		{3, 3, 3},
		{5, 3, 3},
		{0, 3, 1},
		{-2, 3, 1},
	}
	for _, tt := range tests {
		if got := clampPage(tt.page, tt.pages); got != tt.want {
			t.Errorf("clampPage(%d, %d) = %d, want %d", tt.page, tt.pages, got, tt.want)
		}
	}
}

func TestSettleEnforcesMinimumElapsed(t *testing.T) {
	start := time.Now()
	settle(start)
	if elapsed := time.Since(start); elapsed < settleAfter {
		t.Errorf("settle returned after %v, want at least %v", elapsed, settleAfter)
	}
}

func TestSettleSkipsSleepWhenAlreadyElapsed(t *testing.T) {
	start := time.Now().Add(-2 * settleAfter)
	before := time.Now()
	settle(start)
	if waited := time.Since(before); waited > settleAfter/2 {
		t.Errorf("settle slept %v although the floor had passed", waited)
	}
}

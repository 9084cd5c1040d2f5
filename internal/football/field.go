package football

import "strconv"

// DisplayYardLine renders an absolute yard line relative to the team whose
// territory the ball is in.
func DisplayYardLine(yardLine int, possession Side, homeName, awayName string) string {
	if yardLine == MidfieldYardLine {
		return "50"
	}
	teams := Teams{Home: homeName, Away: awayName}
	if yardLine < MidfieldYardLine {
		return teams.Name(possession) + " " + strconv.Itoa(yardLine)
	}
	return teams.Name(possession.Flip()) + " " + strconv.Itoa(GoalLineYardLine-yardLine)
}

// FieldGoalDistance is the kick distance from yardLine toward the given goal.
func FieldGoalDistance(yardLine int, direction Side) int {
	if direction == Home {
		return (GoalLineYardLine - yardLine) + FieldGoalOffset
	}
	return yardLine + FieldGoalOffset
}

// AbsoluteFieldPosition converts a yard line entered relative to fieldSide's
// own goal into the 0-100 scale.
func AbsoluteFieldPosition(teamRelative int, fieldSide Side) int {
	if fieldSide == Home {
		return teamRelative
	}
	return GoalLineYardLine - teamRelative
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampPlayable(v int) int {
	return clamp(v, MinPlayableYard, MaxPlayableYard)
}

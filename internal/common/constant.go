package common

// AppSessionID is the fixed primary key of the single-row identity mirror.
const AppSessionID = 1

// DefaultProjectColor is used when a project is created without a color.
const DefaultProjectColor = "#2e86ab"

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package testmodels holds the model fixtures shared by the package tests.
package testmodels

package catalog

import "testing"

var allRegions = []Region{RegionMY, RegionSG, RegionINT}

func TestEveryServiceHasEveryRegionPrice(t *testing.T) {
	for _, svc := range Services {
		for _, region := range allRegions {
			if _, ok := svc.Prices[region]; !ok {
				t.Errorf("service %s missing price for region %s", svc.ID, region)
			}
		}
	}
}

func TestEveryAddOnHasEveryRegionPrice(t *testing.T) {
	for _, addOn := range AddOns {
		for _, region := range allRegions {
			price, ok := addOn.Prices[region]
			if !ok {
				t.Errorf("add-on %s missing price for region %s", addOn.ID, region)
			}
			if price <= 0 {
				t.Errorf("add-on %s has non-positive price %d for region %s", addOn.ID, price, region)
			}
		}
	}
}

func TestServiceByID(t *testing.T) {
	svc := ServiceByID("business")
	if svc == nil {
		t.Fatal("expected business service")
	}
	if !svc.Popular {
		t.Error("expected business service to be flagged popular")
	}
	if ServiceByID("does-not-exist") != nil {
		t.Error("expected nil for unknown service id")
	}
}

func TestAddOnByID(t *testing.T) {
	addOn := AddOnByID(DomainAddOnID)
	if addOn == nil {
		t.Fatal("expected domain add-on in catalog")
	}
	if addOn.Category != "Essentials" {
		t.Errorf("unexpected domain add-on category %q", addOn.Category)
	}
	if AddOnByID("nope") != nil {
		t.Error("expected nil for unknown add-on id")
	}
}

func TestRegionHelpers(t *testing.T) {
	if !RegionMY.Valid() || !RegionSG.Valid() || !RegionINT.Valid() {
		t.Error("expected the three region codes to be valid")
	}
	if Region("XX").Valid() {
		t.Error("expected unknown region to be invalid")
	}
	if RegionMY.CurrencyPrefix() != "RM" {
		t.Errorf("unexpected MY prefix %q", RegionMY.CurrencyPrefix())
	}
	if RegionSG.CurrencyPrefix() != "S$" {
		t.Errorf("unexpected SG prefix %q", RegionSG.CurrencyPrefix())
	}
	if RegionINT.CurrencyPrefix() != "$" {
		t.Errorf("unexpected INT prefix %q", RegionINT.CurrencyPrefix())
	}
}

func TestValidMainGoal(t *testing.T) {
	for _, goal := range MainGoals {
		if !ValidMainGoal(goal) {
			t.Errorf("expected %q to be a valid goal", goal)
		}
	}
	if ValidMainGoal("world-domination") {
		t.Error("expected unknown goal to be rejected")
	}
}

func TestOnlyAdvancedServiceHasZeroPrice(t *testing.T) {
	for _, svc := range Services {
		for _, region := range allRegions {
			if svc.Advanced {
				continue
			}
			if svc.Prices[region] <= 0 {
				t.Errorf("self-serve service %s has non-positive price for %s", svc.ID, region)
			}
		}
	}
}

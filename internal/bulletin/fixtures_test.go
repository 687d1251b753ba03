package bulletin

// Synthetic bulletin documents covering the provider's format generations.
// Each fixture is minimal: one strategy's layout plus a shared time axis.

const arrayFormDoc = `<?xml version="1.0" encoding="UTF-8"?>
<kml:kml xmlns:kml="http://www.opengis.net/kml/2.2" xmlns:dwd="https://opendata.dwd.de/weather/lib/pointforecast_dwd_extension_V1_0.xsd">
  <kml:Document>
    <dwd:ForecastTimeSteps>
      <dwd:TimeStep>2026-08-25T13:00:00.000Z</dwd:TimeStep>
      <dwd:TimeStep>2026-08-25T14:00:00.000Z</dwd:TimeStep>
      <dwd:TimeStep>2026-08-25T15:00:00.000Z</dwd:TimeStep>
    </dwd:ForecastTimeSteps>
    <kml:Placemark>
      <kml:name>Berlin-Tempelhof</kml:name>
      <kml:ExtendedData>
        <kml:SchemaData>
          <kml:SimpleArrayData name="TTT" uom="K">
            <kml:value>283.15</kml:value>
            <kml:value>284.15</kml:value>
            <kml:value>-</kml:value>
          </kml:SimpleArrayData>
          <kml:SimpleArrayData name="FF">
            <kml:value>10.0 12.5 abc</kml:value>
          </kml:SimpleArrayData>
        </kml:SchemaData>
      </kml:ExtendedData>
    </kml:Placemark>
  </kml:Document>
</kml:kml>`

const seriesFormDoc = `<?xml version="1.0" encoding="UTF-8"?>
<product>
  <TimeStep>2026-08-25T13:00:00Z</TimeStep>
  <TimeStep>2026-08-25T14:00:00Z</TimeStep>
  <Forecast>
    <TimeSeries>
      <Parameter id="TTT">
        <values>280.15 281.15</values>
      </Parameter>
      <Parameter id="DD">
        <value>90</value>
        <value>180</value>
      </Parameter>
    </TimeSeries>
  </Forecast>
</product>`

const attributeFormDoc = `<?xml version="1.0" encoding="UTF-8"?>
<kml:kml xmlns:kml="http://www.opengis.net/kml/2.2" xmlns:dwd="https://opendata.dwd.de/weather/lib/pointforecast_dwd_extension_V1_0.xsd">
  <kml:Document>
    <dwd:ForecastTimeSteps>
      <dwd:TimeStep>2026-08-25T13:00:00.000Z</dwd:TimeStep>
      <dwd:TimeStep>2026-08-25T14:00:00.000Z</dwd:TimeStep>
    </dwd:ForecastTimeSteps>
    <kml:Placemark>
      <kml:description>Offenbach Wetterpark (10641)</kml:description>
      <kml:ExtendedData>
        <dwd:Forecast dwd:elementName="TTT">
          <dwd:value>290.15 291.15</dwd:value>
        </dwd:Forecast>
        <dwd:Forecast dwd:elementName="PPPP">
          <dwd:value>101300 101250</dwd:value>
        </dwd:Forecast>
      </kml:ExtendedData>
    </kml:Placemark>
  </kml:Document>
</kml:kml>`

const trackFormDoc = `<?xml version="1.0" encoding="UTF-8"?>
<root>
  <gx:Track xmlns:gx="http://www.google.com/kml/ext/2.2">
    <when>2026-08-25T13:00:00Z</when>
    <when>2026-08-25T14:00:00Z</when>
    <when>not-a-timestamp</when>
  </gx:Track>
</root>`

// mixedFormDoc carries the same code under both the tabular-array layout and
// a layout only the generic walk would find; the chain must prefer the former.
const mixedFormDoc = `<?xml version="1.0" encoding="UTF-8"?>
<root>
  <TimeStep>2026-08-25T13:00:00Z</TimeStep>
  <ExtendedData>
    <SimpleArrayData name="TTT">
      <value>283.15</value>
    </SimpleArrayData>
  </ExtendedData>
  <station-data name="TTT">
    <value>999</value>
  </station-data>
</root>`

const genericFormDoc = `<?xml version="1.0" encoding="UTF-8"?>
<root>
  <TimeStep>2026-08-25T13:00:00Z</TimeStep>
  <TimeStep>2026-08-25T14:00:00Z</TimeStep>
  <block name="TTT">
    <value>283.15</value>
  </block>
  <block name="TTT">
    <value>284.15</value>
  </block>
</root>`
